package domain

// Plan is a pricing card offered on the public site.
type Plan struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Duration    string   `json:"duration"`
	Highlight   string   `json:"highlight"`
	Features    []string `json:"features"`
	PriceID     string   `json:"priceId"`
}

var Plans = []Plan{
	{
		Title:       "Starter",
		Description: "Perfect for trying out plura",
		Price:       "Free",
		Duration:    "month",
		Highlight:   "Key features",
		Features:    []string{"3 Sub accounts", "2 Team members", "Unlimited pipelines"},
	},
	{
		Title:       "Unlimited Saas",
		Description: "The ultimate agency kit",
		Price:       "$199",
		Duration:    "month",
		Highlight:   "Key features",
		Features:    []string{"Rebilling", "24/7 Support team"},
		PriceID:     "price_1OMhctId5BShktqsxCvF5mj",
	},
	{
		Title:       "Basic",
		Description: "For serious agency owners",
		Price:       "$49",
		Duration:    "month",
		Highlight:   "Everything in Starter, plus",
		Features:    []string{"Unlimited Sub accounts", "Unlimited Team members"},
		PriceID:     "price_1OMhQuId5BShktqggRXZP2e",
	},
}
