package entity

import "time"

// DateLayout formato de las fechas de calendario en el payload y en el documento.
const DateLayout = "2006-01-02"

// DefaultPaymentTermDays días entre emisión y vencimiento si el llamador no indica otra cosa.
const DefaultPaymentTermDays = 30

// Date fecha de calendario sin hora ni zona.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf toma el día de calendario de t en su propia zona horaria.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate interpreta una fecha YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// IsZero indica si la fecha no fue asignada.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// AddDays suma n días normalizando mes y año.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Time devuelve la fecha a medianoche UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formatea como YYYY-MM-DD; vacío si la fecha es cero.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateLayout)
}
