package pricing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/printworks/backend/internal/domain/shared"
)

// ValidAttributes maps a provider attribute name to the ordered list of
// values the resolved SKU accepts, in the provider's exact casing.
type ValidAttributes map[string][]string

// AttributeMap is the normalized, filtered, defaulted attribute set that is
// valid for a resolved SKU. Every key is declared by the SKU and every value
// is an element of the SKU's valid-value list, except for transport-case
// overrides (see transportCase).
type AttributeMap map[string]string

// Preference-ordered defaults for attributes the provider requires but the
// caller left unset. Matching is case-insensitive against the SKU's declared
// values; the first hit wins, else the first declared value is used.
var (
	finishPreference    = []string{"high gloss", "satin", "gloss", "matte"}
	wrapPreference      = []string{"ImageWrap", "Black", "White"}
	colorPreference     = []string{"black", "white", "natural"}
	paperTypePreference = []string{"enhanced matte", "photo rag", "lustre"}
	edgePreference      = []string{"black", "white"}
)

// defaultable lists the attributes that are filled from a preference list
// when the SKU declares them and the caller did not set them. The provider
// rejects quote requests that omit a declared attribute.
var defaultable = map[string][]string{
	AttrFinish:    finishPreference,
	AttrWrap:      wrapPreference,
	AttrColor:     colorPreference,
	AttrPaperType: paperTypePreference,
	AttrEdge:      edgePreference,
}

// transportCase forces specific attributes to a case convention before they
// are sent to the quote endpoint. The provider's catalog endpoint returns
// "wrap" values capitalized but its quote endpoint only accepts lowercase.
var transportCase = map[string]func(string) string{
	AttrWrap: strings.ToLower,
}

// mountThicknessPattern extracts the numeric thickness token from a mount
// value, e.g. "2.0" from "2.0mm mount".
var mountThicknessPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

// BuildAttributes validates and defaults a product configuration against a
// SKU's declared capability set, producing the attribute map sent to the
// quote endpoint.
//
// Rules are applied in precedence order: type-based stripping (inherent in
// the tagged configuration), exact case-insensitive matching reconciled to
// provider casing, mount fuzzy thickness matching, single-"no mount"-option
// collapse, mount/mountColor coupling, preference-ordered defaulting, and
// finally transport-case normalization.
func BuildAttributes(config ProductConfiguration, valid ValidAttributes) (AttributeMap, error) {
	result := make(AttributeMap)

	for name, want := range config.desired() {
		options, declared := valid[name]
		if !declared {
			// Inapplicable to this SKU; drop silently
			continue
		}
		if len(options) == 0 {
			return nil, fmt.Errorf("%w: attribute %q declares no valid values",
				shared.ErrCatalogInconsistent, name)
		}

		if match, ok := exactMatch(want, options); ok {
			result[name] = match
			continue
		}

		if name == AttrMount {
			if collapseNoMount(options) {
				// The SKU only offers "no mount"; drop the request
				// instead of rejecting it.
				continue
			}
			if match, ok := fuzzyMountMatch(want, options); ok {
				result[name] = match
				continue
			}
		}

		// Invalid value for a declared attribute. Defaultable attributes
		// fall through to defaulting below; anything else is dropped.
	}

	// Coupling rule: a mount without a mount color is not quotable
	if _, hasMount := result[AttrMount]; hasMount {
		if options, declared := valid[AttrMountColor]; declared {
			if _, hasColor := result[AttrMountColor]; !hasColor {
				if len(options) == 0 {
					return nil, fmt.Errorf("%w: attribute %q declares no valid values",
						shared.ErrCatalogInconsistent, AttrMountColor)
				}
				result[AttrMountColor] = options[0]
			}
		}
	}

	// Fill declared-but-unset attributes from preference lists
	for name, prefs := range defaultable {
		options, declared := valid[name]
		if !declared {
			continue
		}
		if _, set := result[name]; set {
			continue
		}
		if len(options) == 0 {
			return nil, fmt.Errorf("%w: attribute %q declares no valid values",
				shared.ErrCatalogInconsistent, name)
		}
		result[name] = pickPreferred(prefs, options)
	}

	for name, transform := range transportCase {
		if v, ok := result[name]; ok {
			result[name] = transform(v)
		}
	}

	return result, nil
}

// BuildAttributeDefaults fills a SKU's required attributes without any
// caller configuration. Used when an item arrives as a bare SKU: the
// provider still refuses to quote with declared attributes absent.
func BuildAttributeDefaults(valid ValidAttributes) (AttributeMap, error) {
	result := make(AttributeMap)
	for name, prefs := range defaultable {
		options, declared := valid[name]
		if !declared {
			continue
		}
		if len(options) == 0 {
			return nil, fmt.Errorf("%w: attribute %q declares no valid values",
				shared.ErrCatalogInconsistent, name)
		}
		result[name] = pickPreferred(prefs, options)
	}
	for name, transform := range transportCase {
		if v, ok := result[name]; ok {
			result[name] = transform(v)
		}
	}
	return result, nil
}

// exactMatch finds a case-insensitive match and returns it in the provider's
// exact casing
func exactMatch(want string, options []string) (string, bool) {
	for _, opt := range options {
		if strings.EqualFold(want, opt) {
			return opt, true
		}
	}
	return "", false
}

// fuzzyMountMatch finds a mount option containing the requested thickness
// token. "2.0mm" matches an option containing "2.0mm" or the rounded integer
// form "2mm".
func fuzzyMountMatch(want string, options []string) (string, bool) {
	token := mountThicknessPattern.FindString(want)
	if token == "" {
		return "", false
	}
	candidates := []string{token}
	if trimmed := strings.TrimSuffix(token, ".0"); trimmed != token {
		candidates = append(candidates, trimmed)
	}
	for _, opt := range options {
		lower := strings.ToLower(opt)
		for _, c := range candidates {
			if strings.Contains(lower, c+"mm") || strings.Contains(lower, c+" mm") {
				return opt, true
			}
		}
	}
	return "", false
}

// collapseNoMount reports whether the SKU exposes a single mount option that
// denotes the absence of a mount
func collapseNoMount(options []string) bool {
	if len(options) != 1 {
		return false
	}
	v := strings.ToLower(options[0])
	return v == NoneValue || strings.Contains(v, "no mount")
}

// pickPreferred returns the first preference present in options
// (case-insensitively, in the provider's casing), else the first option
func pickPreferred(prefs, options []string) string {
	for _, p := range prefs {
		if match, ok := exactMatch(p, options); ok {
			return match
		}
	}
	return options[0]
}
