package internal

const (
	CategoryUncategorized = "Uncategorized"
	CategoryAll           = "All"
)

type ImportSource string

const (
	SourceXLSX  ImportSource = "xlsx"
	SourceXLS   ImportSource = "xls"
	SourceCSV   ImportSource = "csv"
	SourceTSV   ImportSource = "tsv"
	SourceHTML  ImportSource = "html"
	SourceEmail ImportSource = "eml"
	SourcePDF   ImportSource = "pdf"
)

// Item is one selectable catalog entry.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// IngestedItem carries the default quantity read from a quantity column.
// The hint is consumed once when the catalog is replaced.
type IngestedItem struct {
	Item
	QtyHint *int
	RowNo   int
}

// Selection maps item ids to strictly positive quantities.
type Selection map[string]int

func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for id, qty := range s {
		out[id] = qty
	}
	return out
}

type ImportRow struct {
	ID          int
	TraceID     string
	Filename    string
	Hash        string
	Source      string
	ItemCount   int
	Preselected int
	Status      string
	Error       string
	CreatedAt   string
}

type OutputRow struct {
	ID         int
	ImportID   *int
	Output     string
	EntryCount int
	Copied     bool
	CreatedAt  string
}
