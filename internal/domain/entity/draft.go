package entity

import "github.com/shopspring/decimal"

// DefaultInvoice factura de ejemplo con la que arranca una sesión de edición:
// datos de muestra del negocio y del cliente, una línea en blanco, impuesto 0
// y vencimiento a DefaultPaymentTermDays.
func DefaultInvoice(today Date, number string) Invoice {
	business := Party{
		Name:    "Holmes Investigations",
		Email:   "sherlock@221bbakerstreet.co.uk",
		Address: "221B Baker Street, London, UK",
	}
	customer := Party{
		Name:    "Dr. John H. Watson",
		Email:   "watson@medcorp.uk",
		Address: "14 Kensington Gardens, London, UK",
	}
	header := Header{
		Number:  number,
		Date:    today,
		DueDate: today.AddDays(DefaultPaymentTermDays),
	}
	return NewInvoice(business, customer, header, nil, decimal.Zero).WithNewLineItem()
}
