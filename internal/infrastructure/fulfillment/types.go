package fulfillment

// outcomeOK is the provider's success marker
const outcomeOK = "Ok"

// apiEnvelope is the common response wrapper
type apiEnvelope struct {
	Outcome string `json:"outcome"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (e apiEnvelope) isSuccess() bool {
	return e.Outcome == outcomeOK
}

// catalogSearchResponse is the response of GET /v1/catalog
type catalogSearchResponse struct {
	apiEnvelope
	Products []catalogEntry `json:"products"`
}

// catalogEntry is one candidate SKU in a catalog search
type catalogEntry struct {
	SKU                 string   `json:"sku"`
	ProductType         string   `json:"productType"`
	Size                string   `json:"size"`
	Edge                string   `json:"edge,omitempty"`
	CanvasType          string   `json:"canvasType,omitempty"`
	ProductionCountries []string `json:"productionCountries"`
}

// productDetailResponse is the response of GET /v1/products/{sku}
type productDetailResponse struct {
	apiEnvelope
	Product *productDetail `json:"product"`
}

type productDetail struct {
	SKU         string              `json:"sku"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Attributes  map[string][]string `json:"attributes"`
}

// quoteCreateRequest is the body of POST /v1/quotes
type quoteCreateRequest struct {
	ShippingMethod         string             `json:"shippingMethod"`
	DestinationCountryCode string             `json:"destinationCountryCode"`
	Items                  []quoteItemPayload `json:"items"`
}

type quoteItemPayload struct {
	SKU        string            `json:"sku"`
	Copies     int               `json:"copies"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Assets     []assetPayload    `json:"assets"`
}

type assetPayload struct {
	PrintArea string `json:"printArea"`
	URL       string `json:"url"`
}

// quoteCreateResponse is the response of POST /v1/quotes
type quoteCreateResponse struct {
	apiEnvelope
	Quotes []quotePayload `json:"quotes"`
}

type quotePayload struct {
	ShipmentMethod string             `json:"shipmentMethod"`
	CostSummary    costSummaryPayload `json:"costSummary"`
	Shipments      []shipmentPayload  `json:"shipments"`
}

type costSummaryPayload struct {
	Items     moneyPayload `json:"items"`
	Shipping  moneyPayload `json:"shipping"`
	TotalCost moneyPayload `json:"totalCost"`
}

type moneyPayload struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type shipmentPayload struct {
	FulfillmentLocation struct {
		CountryCode string `json:"countryCode"`
		LabCode     string `json:"labCode,omitempty"`
	} `json:"fulfillmentLocation"`
}
