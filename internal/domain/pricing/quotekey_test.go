package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteKey(t *testing.T) {
	t.Run("identical maps produce identical keys", func(t *testing.T) {
		a := AttributeMap{"color": "Black", "glaze": "Acrylic", "finish": "Matte"}
		b := AttributeMap{"finish": "Matte", "color": "Black", "glaze": "Acrylic"}
		assert.Equal(t, QuoteKey(a), QuoteKey(b))
	})

	t.Run("casing does not change the key", func(t *testing.T) {
		a := AttributeMap{"Color": "BLACK"}
		b := AttributeMap{"color": "black"}
		assert.Equal(t, QuoteKey(a), QuoteKey(b))
	})

	t.Run("different values produce different keys", func(t *testing.T) {
		a := AttributeMap{"color": "black"}
		b := AttributeMap{"color": "white"}
		assert.NotEqual(t, QuoteKey(a), QuoteKey(b))
	})

	t.Run("key is sorted and pipe-delimited", func(t *testing.T) {
		key := QuoteKey(AttributeMap{"glaze": "Acrylic", "color": "Black"})
		assert.Equal(t, "color=black|glaze=acrylic", key)
	})

	t.Run("empty map produces empty key", func(t *testing.T) {
		assert.Equal(t, "", QuoteKey(AttributeMap{}))
		assert.Equal(t, "", QuoteKey(nil))
	})
}
