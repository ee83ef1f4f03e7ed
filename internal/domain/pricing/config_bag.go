package pricing

import (
	"fmt"

	"github.com/printworks/backend/internal/domain/shared"
)

// FrameConfigBag is the loosely-typed frame configuration supplied by the
// storefront. Keys that do not apply to the requested product type are
// dropped when the bag is converted to a tagged configuration.
type FrameConfigBag struct {
	FrameColor string `json:"frameColor,omitempty"`
	FrameStyle string `json:"frameStyle,omitempty"`
	Wrap       string `json:"wrap,omitempty"`
	Glaze      string `json:"glaze,omitempty"`
	Mount      string `json:"mount,omitempty"`
	MountColor string `json:"mountColor,omitempty"`
	PaperType  string `json:"paperType,omitempty"`
	Finish     string `json:"finish,omitempty"`
	Edge       string `json:"edge,omitempty"`
	// CanvasType is a SKU-resolution preference hint, not an attribute
	CanvasType string `json:"canvasType,omitempty"`
}

// NewConfiguration converts a caller-supplied bag into the tagged
// configuration for the product type. This is where type-based stripping
// happens: a field the variant does not carry simply has nowhere to go.
func NewConfiguration(productType ProductType, size string, bag FrameConfigBag) (ProductConfiguration, error) {
	if !productType.IsValid() {
		return nil, fmt.Errorf("%w: unsupported product type %q",
			shared.ErrInvalidConfiguration, productType)
	}
	if size == "" {
		return nil, fmt.Errorf("%w: size is required", shared.ErrInvalidConfiguration)
	}

	switch productType {
	case ProductTypePrint:
		return PrintConfig{
			SizeToken:  size,
			FrameColor: bag.FrameColor,
			FrameStyle: bag.FrameStyle,
			Glaze:      bag.Glaze,
			Mount:      bag.Mount,
			MountColor: bag.MountColor,
			PaperType:  bag.PaperType,
			Finish:     bag.Finish,
		}, nil
	case ProductTypeCanvas:
		return CanvasConfig{
			SizeToken: size,
			Wrap:      bag.Wrap,
			Edge:      bag.Edge,
		}, nil
	case ProductTypeFramedCanvas:
		return FramedCanvasConfig{
			SizeToken:  size,
			FrameColor: bag.FrameColor,
			FrameStyle: bag.FrameStyle,
			Glaze:      bag.Glaze,
			Mount:      bag.Mount,
			MountColor: bag.MountColor,
		}, nil
	case ProductTypeAcrylic:
		return AcrylicConfig{SizeToken: size, Finish: bag.Finish}, nil
	case ProductTypeMetal:
		return MetalConfig{SizeToken: size, Finish: bag.Finish}, nil
	case ProductTypePoster:
		return PosterConfig{
			SizeToken: size,
			PaperType: bag.PaperType,
			Finish:    bag.Finish,
		}, nil
	}
	return nil, fmt.Errorf("%w: unsupported product type %q",
		shared.ErrInvalidConfiguration, productType)
}
