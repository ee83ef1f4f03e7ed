package pricing

// ProductType identifies a category of printable product. Each category
// exposes a distinct attribute set; configurations are tagged by type so an
// inapplicable attribute cannot be expressed in the first place.
type ProductType string

const (
	ProductTypePrint        ProductType = "print"
	ProductTypeCanvas       ProductType = "canvas"
	ProductTypeFramedCanvas ProductType = "framed-canvas"
	ProductTypeAcrylic      ProductType = "acrylic"
	ProductTypeMetal        ProductType = "metal"
	ProductTypePoster       ProductType = "poster"
)

// AllProductTypes returns all supported product types
func AllProductTypes() []ProductType {
	return []ProductType{
		ProductTypePrint,
		ProductTypeCanvas,
		ProductTypeFramedCanvas,
		ProductTypeAcrylic,
		ProductTypeMetal,
		ProductTypePoster,
	}
}

// IsValid returns true if the product type is one of the supported values
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypePrint, ProductTypeCanvas, ProductTypeFramedCanvas,
		ProductTypeAcrylic, ProductTypeMetal, ProductTypePoster:
		return true
	}
	return false
}

func (t ProductType) String() string {
	return string(t)
}

// Provider attribute names. These are the exact keys the fulfillment
// provider's catalog declares per SKU.
const (
	AttrColor      = "color" // frame color
	AttrStyle      = "style" // frame style
	AttrWrap       = "wrap"
	AttrGlaze      = "glaze"
	AttrMount      = "mount"
	AttrMountColor = "mountColor"
	AttrPaperType  = "paperType"
	AttrFinish     = "finish"
	AttrEdge       = "edge"
)

// NoneValue is the provider's token for an absent glaze or mount
const NoneValue = "none"

// ProductConfiguration is a product-type-tagged configuration. Each concrete
// type exposes only the attributes that apply to its category, which replaces
// runtime presence checks on an open string map.
type ProductConfiguration interface {
	// ProductType returns the category this configuration belongs to
	ProductType() ProductType
	// Size returns the size token, e.g. "16x20"
	Size() string
	// desired returns the attribute values the caller requested, keyed by
	// provider attribute name. Empty values are omitted.
	desired() map[string]string
}

// PrintConfig configures a framed or unframed paper print.
// Wrap never applies to a print.
type PrintConfig struct {
	SizeToken  string
	FrameColor string
	FrameStyle string
	Glaze      string
	Mount      string
	MountColor string
	PaperType  string
	Finish     string
}

func (c PrintConfig) ProductType() ProductType { return ProductTypePrint }
func (c PrintConfig) Size() string             { return c.SizeToken }

func (c PrintConfig) desired() map[string]string {
	return compact(map[string]string{
		AttrColor:      c.FrameColor,
		AttrStyle:      c.FrameStyle,
		AttrGlaze:      c.Glaze,
		AttrMount:      c.Mount,
		AttrMountColor: c.MountColor,
		AttrPaperType:  c.PaperType,
		AttrFinish:     c.Finish,
	})
}

// CanvasConfig configures a stretched canvas. Frame attributes do not apply;
// glaze and mount are always "none" for canvas.
type CanvasConfig struct {
	SizeToken string
	Wrap      string
	Edge      string
}

func (c CanvasConfig) ProductType() ProductType { return ProductTypeCanvas }
func (c CanvasConfig) Size() string             { return c.SizeToken }

func (c CanvasConfig) desired() map[string]string {
	m := compact(map[string]string{
		AttrWrap: c.Wrap,
		AttrEdge: c.Edge,
	})
	m[AttrGlaze] = NoneValue
	m[AttrMount] = NoneValue
	return m
}

// FramedCanvasConfig configures a canvas in a float frame.
// Wrap never applies once the canvas is framed.
type FramedCanvasConfig struct {
	SizeToken  string
	FrameColor string
	FrameStyle string
	Glaze      string
	Mount      string
	MountColor string
}

func (c FramedCanvasConfig) ProductType() ProductType { return ProductTypeFramedCanvas }
func (c FramedCanvasConfig) Size() string             { return c.SizeToken }

func (c FramedCanvasConfig) desired() map[string]string {
	return compact(map[string]string{
		AttrColor:      c.FrameColor,
		AttrStyle:      c.FrameStyle,
		AttrGlaze:      c.Glaze,
		AttrMount:      c.Mount,
		AttrMountColor: c.MountColor,
	})
}

// AcrylicConfig configures an acrylic panel. Glaze and mount are forced to
// "none"; the panel itself is the glazing.
type AcrylicConfig struct {
	SizeToken string
	Finish    string
}

func (c AcrylicConfig) ProductType() ProductType { return ProductTypeAcrylic }
func (c AcrylicConfig) Size() string             { return c.SizeToken }

func (c AcrylicConfig) desired() map[string]string {
	m := compact(map[string]string{
		AttrFinish: c.Finish,
	})
	m[AttrGlaze] = NoneValue
	m[AttrMount] = NoneValue
	return m
}

// MetalConfig configures a metal print
type MetalConfig struct {
	SizeToken string
	Finish    string
}

func (c MetalConfig) ProductType() ProductType { return ProductTypeMetal }
func (c MetalConfig) Size() string             { return c.SizeToken }

func (c MetalConfig) desired() map[string]string {
	m := compact(map[string]string{
		AttrFinish: c.Finish,
	})
	m[AttrGlaze] = NoneValue
	m[AttrMount] = NoneValue
	return m
}

// PosterConfig configures an unframed poster
type PosterConfig struct {
	SizeToken string
	PaperType string
	Finish    string
}

func (c PosterConfig) ProductType() ProductType { return ProductTypePoster }
func (c PosterConfig) Size() string             { return c.SizeToken }

func (c PosterConfig) desired() map[string]string {
	m := compact(map[string]string{
		AttrPaperType: c.PaperType,
		AttrFinish:    c.Finish,
	})
	m[AttrGlaze] = NoneValue
	m[AttrMount] = NoneValue
	return m
}

// compact drops empty values from an attribute map
func compact(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
