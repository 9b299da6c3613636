package gemini

// Schema mirrors the provider's responseSchema wire format. The same value
// is serialized into every generateContent request to bias generation and is
// consulted by the conformance checker afterwards, so the declared shape and
// the domain type cannot drift silently (see the schema sync test).
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Primitive type tags understood by the provider.
const (
	TypeString  = "STRING"
	TypeNumber  = "NUMBER"
	TypeBoolean = "BOOLEAN"
	TypeObject  = "OBJECT"
	TypeArray   = "ARRAY"
)

// Closed value sets for string fields.
var (
	TechCategories        = []string{"RESERVAS", "DELIVERY", "TPV", "PAGOS", "OTRO"}
	ValidationLevels      = []string{"ALTO", "MEDIO", "BAJO"}
	EmailVectorTypes      = []string{"INFERIDO", "VERIFICADO", "PÚBLICO"}
	EmailVectorRiskLevels = []string{"BAJO", "MEDIO", "ALTO"}
)

// BusinessProfileSchema declares the expected model output, field by field.
var BusinessProfileSchema = &Schema{
	Type: TypeObject,
	Properties: map[string]*Schema{
		"businessName": {Type: TypeString},
		"city":         {Type: TypeString},
		"summary":      {Type: TypeString},
		"score":        {Type: TypeNumber},
		"metrics": {
			Type: TypeObject,
			Properties: map[string]*Schema{
				"reputation": {Type: TypeNumber},
				"visibility": {Type: TypeNumber},
				"quality":    {Type: TypeNumber},
				"price":      {Type: TypeNumber},
			},
			Required: []string{"reputation", "visibility", "quality", "price"},
		},
		"attributes": {
			Type: TypeObject,
			Properties: map[string]*Schema{
				"terrace":      {Type: TypeBoolean},
				"reservations": {Type: TypeBoolean},
				"cardType":     {Type: TypeString},
			},
			Required: []string{"terrace", "reservations", "cardType"},
		},
		"techStack": {
			Type: TypeArray,
			Items: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"name":     {Type: TypeString},
					"category": {Type: TypeString, Enum: TechCategories},
				},
			},
		},
		"potentialIntegration": {Type: TypeBoolean},
		"decisionMakers": {
			Type: TypeArray,
			Items: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"name":       {Type: TypeString},
					"role":       {Type: TypeString},
					"validation": {Type: TypeString, Enum: ValidationLevels},
					"source":     {Type: TypeString},
				},
			},
		},
		"deepAnalysis": {
			Type: TypeObject,
			Properties: map[string]*Schema{
				"summary": {Type: TypeString},
				"sources": {Type: TypeArray, Items: &Schema{Type: TypeString}},
			},
			Required: []string{"summary", "sources"},
		},
		"contact": {
			Type: TypeObject,
			Properties: map[string]*Schema{
				"address":     {Type: TypeString},
				"website":     {Type: TypeString},
				"phone":       {Type: TypeString},
				"phoneSource": {Type: TypeString},
				"uberEatsUrl": {Type: TypeString, Description: "URL directa del perfil de Uber Eats si existe"},
				"domain":      {Type: TypeString},
				"osintNotes":  {Type: TypeString},
			},
		},
		"emailVectors": {
			Type: TypeArray,
			Items: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"email": {Type: TypeString},
					"type":  {Type: TypeString, Enum: EmailVectorTypes},
					"risk":  {Type: TypeString, Enum: EmailVectorRiskLevels},
				},
			},
		},
		"outreach": {
			Type: TypeArray,
			Items: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"type":    {Type: TypeString},
					"subject": {Type: TypeString},
					"body":    {Type: TypeString},
				},
				Required: []string{"type", "subject", "body"},
			},
		},
		"conversationStarters": {
			Type: TypeArray,
			Items: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"headline": {Type: TypeString},
					"context":  {Type: TypeString},
					"date":     {Type: TypeString},
				},
			},
		},
		"priceLevel":  {Type: TypeString},
		"cuisineType": {Type: TypeString},
	},
	Required: []string{
		"businessName",
		"score",
		"decisionMakers",
		"outreach",
		"techStack",
		"conversationStarters",
	},
}
