package entity

// Party representa al emisor (negocio) o al receptor (cliente) de la factura.
// Logo solo aplica al negocio: URL o data URI de la imagen.
type Party struct {
	Name    string
	Email   string
	Address string
	Logo    string
}

// Header cabecera de la factura: número asignado por el llamador y fechas de calendario.
type Header struct {
	Number  string
	Date    Date
	DueDate Date
}
