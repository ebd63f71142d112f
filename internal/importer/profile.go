package importer

// profile describes one accepted column layout.
type profile struct {
	name string
	// signed profiles carry no kind column; a negative amount is an expense.
	signed bool
	// required columns, by canonical name.
	required []string
}

// Canonical column names.
const (
	colKind     = "kind"
	colAmount   = "amount"
	colCategory = "category"
	colNote     = "note"
)

// aliases maps lower-cased header cells to canonical column names.
var aliases = map[string]string{
	"kind":        colKind,
	"type":        colKind,
	"amount":      colAmount,
	"value":       colAmount,
	"category":    colCategory,
	"note":        colNote,
	"notes":       colNote,
	"description": colNote,
	"memo":        colNote,
}

// profiles are tried in order; the more specific layout comes first.
var profiles = []profile{
	{name: "ledger", required: []string{colKind, colAmount}},
	{name: "signed", signed: true, required: []string{colAmount}},
}

func (p *profile) matches(cols colIndex) bool {
	for _, name := range p.required {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}
