package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printworks/backend/internal/domain/shared"
)

func framedPrintAttributes() ValidAttributes {
	return ValidAttributes{
		AttrColor:      {"Black", "White", "Natural"},
		AttrStyle:      {"Classic", "Box"},
		AttrGlaze:      {"Acrylic", "Glass"},
		AttrMount:      {"2.4mm Conservation White Mount", "2.4mm Conservation Black Mount", "No Mount / Full Bleed"},
		AttrMountColor: {"Snow White", "Off White"},
		AttrPaperType:  {"Enhanced Matte", "Photo Rag"},
		AttrFinish:     {"Matte", "High Gloss"},
	}
}

func TestBuildAttributes(t *testing.T) {
	t.Run("exact match reconciles to provider casing", func(t *testing.T) {
		attrs, err := BuildAttributes(PrintConfig{
			SizeToken:  "16x20",
			FrameColor: "BLACK",
			Glaze:      "acrylic",
		}, framedPrintAttributes())
		require.NoError(t, err)
		assert.Equal(t, "Black", attrs[AttrColor])
		assert.Equal(t, "Acrylic", attrs[AttrGlaze])
	})

	t.Run("undeclared attributes are dropped", func(t *testing.T) {
		attrs, err := BuildAttributes(PrintConfig{
			SizeToken:  "16x20",
			FrameStyle: "Ornate",
		}, ValidAttributes{
			AttrColor: {"Black"},
		})
		require.NoError(t, err)
		_, hasStyle := attrs[AttrStyle]
		assert.False(t, hasStyle)
	})

	t.Run("mount matches fuzzily on thickness", func(t *testing.T) {
		attrs, err := BuildAttributes(PrintConfig{
			SizeToken: "16x20",
			Mount:     "2.4mm white",
		}, framedPrintAttributes())
		require.NoError(t, err)
		assert.Equal(t, "2.4mm Conservation White Mount", attrs[AttrMount])
	})

	t.Run("mount thickness matches integer form of whole millimeters", func(t *testing.T) {
		valid := framedPrintAttributes()
		valid[AttrMount] = []string{"2mm Standard Mount"}
		attrs, err := BuildAttributes(PrintConfig{
			SizeToken: "16x20",
			Mount:     "2.0mm",
		}, valid)
		require.NoError(t, err)
		assert.Equal(t, "2mm Standard Mount", attrs[AttrMount])
	})

	t.Run("single no-mount option collapses to no request", func(t *testing.T) {
		valid := framedPrintAttributes()
		valid[AttrMount] = []string{"No Mount / Full Bleed"}
		attrs, err := BuildAttributes(PrintConfig{
			SizeToken: "16x20",
			Mount:     "2.4mm white",
		}, valid)
		require.NoError(t, err)
		_, hasMount := attrs[AttrMount]
		assert.False(t, hasMount)
	})

	t.Run("mount pulls in a mount color", func(t *testing.T) {
		attrs, err := BuildAttributes(PrintConfig{
			SizeToken: "16x20",
			Mount:     "2.4mm Conservation White Mount",
		}, framedPrintAttributes())
		require.NoError(t, err)
		assert.Equal(t, "Snow White", attrs[AttrMountColor])
	})

	t.Run("explicit mount color is kept", func(t *testing.T) {
		attrs, err := BuildAttributes(PrintConfig{
			SizeToken:  "16x20",
			Mount:      "2.4mm Conservation White Mount",
			MountColor: "off white",
		}, framedPrintAttributes())
		require.NoError(t, err)
		assert.Equal(t, "Off White", attrs[AttrMountColor])
	})

	t.Run("declared attributes are defaulted from preference lists", func(t *testing.T) {
		attrs, err := BuildAttributes(PrintConfig{SizeToken: "16x20"}, framedPrintAttributes())
		require.NoError(t, err)
		assert.Equal(t, "High Gloss", attrs[AttrFinish])
		assert.Equal(t, "Black", attrs[AttrColor])
		assert.Equal(t, "Enhanced Matte", attrs[AttrPaperType])
	})

	t.Run("defaulting falls back to first declared value", func(t *testing.T) {
		attrs, err := BuildAttributes(PosterConfig{SizeToken: "A2"}, ValidAttributes{
			AttrFinish: {"Pearl", "Silk"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Pearl", attrs[AttrFinish])
	})

	t.Run("canvas forces glaze and mount to none and lowercases wrap", func(t *testing.T) {
		attrs, err := BuildAttributes(CanvasConfig{SizeToken: "16x20"}, ValidAttributes{
			AttrWrap:  {"ImageWrap", "Black", "White"},
			AttrGlaze: {"none", "Acrylic"},
			AttrMount: {"none", "2.4mm Mount"},
			AttrEdge:  {"Black", "White"},
		})
		require.NoError(t, err)
		assert.Equal(t, "imagewrap", attrs[AttrWrap])
		assert.Equal(t, "none", attrs[AttrGlaze])
		assert.Equal(t, "none", attrs[AttrMount])
		assert.Equal(t, "Black", attrs[AttrEdge])
	})

	t.Run("empty valid-value list is a catalog inconsistency", func(t *testing.T) {
		_, err := BuildAttributes(PrintConfig{SizeToken: "16x20", FrameColor: "Black"}, ValidAttributes{
			AttrColor: {},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrCatalogInconsistent)
	})

	t.Run("invalid value for a non-defaultable attribute is dropped", func(t *testing.T) {
		attrs, err := BuildAttributes(PrintConfig{
			SizeToken: "16x20",
			Glaze:     "bulletproof",
		}, framedPrintAttributes())
		require.NoError(t, err)
		_, hasGlaze := attrs[AttrGlaze]
		assert.False(t, hasGlaze)
	})
}

func TestBuildAttributeDefaults(t *testing.T) {
	t.Run("fills only declared defaultable attributes", func(t *testing.T) {
		attrs, err := BuildAttributeDefaults(ValidAttributes{
			AttrWrap:   {"ImageWrap", "Black"},
			AttrFinish: {"Matte"},
			AttrGlaze:  {"Acrylic"},
		})
		require.NoError(t, err)
		assert.Equal(t, "imagewrap", attrs[AttrWrap])
		assert.Equal(t, "Matte", attrs[AttrFinish])
		_, hasGlaze := attrs[AttrGlaze]
		assert.False(t, hasGlaze)
	})

	t.Run("empty capability set produces empty map", func(t *testing.T) {
		attrs, err := BuildAttributeDefaults(ValidAttributes{})
		require.NoError(t, err)
		assert.Empty(t, attrs)
	})
}
