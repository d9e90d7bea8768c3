package binding

// RenderOptions opciones fijas de página del documento.
type RenderOptions struct {
	Format              string // tamaño de página, siempre vertical
	MarginPx            int    // margen en píxeles CSS en los cuatro lados
	PrintBackground     bool
	DisplayHeaderFooter bool
}

// A4 portrait, 20px en todos los lados, fondos activados y sin encabezado ni pie.
var DefaultRenderOptions = RenderOptions{
	Format:              "A4",
	MarginPx:            20,
	PrintBackground:     true,
	DisplayHeaderFooter: false,
}

// MarginMM convierte el margen a milímetros (96 px por pulgada).
func (o RenderOptions) MarginMM() float64 {
	return float64(o.MarginPx) * 25.4 / 96
}
