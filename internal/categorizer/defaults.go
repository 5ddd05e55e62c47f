package categorizer

// Rule maps a lower-cased keyword fragment to a lower-cased category name.
type Rule struct {
	Keyword      string
	CategoryName string
}

// defaultRules is the process-wide fallback table shared by all users. It is
// ordered: the first matching entry wins. Never modified after init.
var defaultRules = []Rule{
	{"zomato", "food"},
	{"swiggy", "food"},
	{"restaurant", "food"},
	{"grocery", "groceries"},
	{"bigbasket", "groceries"},
	{"zepto", "groceries"},
	{"uber", "transport"},
	{"ola", "transport"},
	{"fuel", "transport"},
	{"electricity", "bills"},
	{"recharge", "bills"},
	{"airtel", "bills"},
	{"netflix", "entertainment"},
	{"spotify", "entertainment"},
	{"amazon", "shopping"},
	{"flipkart", "shopping"},
	{"myntra", "shopping"},
	{"pharmacy", "health"},
	{"apollo", "health"},
	{"salary", "salary"},
}

// DefaultRules returns a copy of the default keyword table in match order.
func DefaultRules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}
