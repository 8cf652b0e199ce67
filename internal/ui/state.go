package ui

import (
	"strings"

	"github.com/nhath/pgpeek/internal/client"
)

// Stage is where the browser is in the connect → database → table flow.
type Stage int

const (
	StageDisconnected Stage = iota
	StageConnected
	StageDatabaseSelected
	StageTableSelected
)

func (s Stage) String() string {
	switch s {
	case StageConnected:
		return "CONNECTED"
	case StageDatabaseSelected:
		return "DATABASE"
	case StageTableSelected:
		return "TABLE"
	default:
		return "DISCONNECTED"
	}
}

// Sort directions sent as sortOrder.
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// FetchKind names the API call a transition asks for.
type FetchKind int

const (
	FetchConnect FetchKind = iota
	FetchDatabases
	FetchTables
	FetchTableData
	FetchQuery
)

// Fetch describes one API call to issue. It captures everything the call
// needs so later state changes do not leak into it.
type Fetch struct {
	Kind             FetchKind
	ConnectionString string
	Database         string
	Table            string
	Statement        string
	Limit            int
	SortBy           string
	SortOrder        string
	// Seq orders table-data and query fetches; the newest one owns Busy.
	Seq              int
}

// Browser is the presenter's state machine. Transitions mutate it and
// return the fetch to issue, if any; completions are fed back through the
// *Done methods. It performs no I/O.
type Browser struct {
	Stage Stage

	Databases []string
	Tables    []string
	Database  string
	Table     string

	Query      string
	Limit      int
	SortColumn string
	SortOrder  string

	Result *client.Result
	Err    string
	Busy   bool

	seq int
}

// NewBrowser returns a disconnected browser with the given row cap.
func NewBrowser(limit int) *Browser {
	return &Browser{
		Limit:     limit,
		SortOrder: SortAsc,
	}
}

// Connect starts a connect. It returns nil for a blank string.
func (b *Browser) Connect(connectionString string) *Fetch {
	connectionString = strings.TrimSpace(connectionString)
	if connectionString == "" {
		return nil
	}
	b.Err = ""
	b.Busy = true
	return &Fetch{Kind: FetchConnect, ConnectionString: connectionString}
}

// ConnectDone applies a connect outcome and, on success, asks for the
// database list.
func (b *Browser) ConnectDone(err error) *Fetch {
	b.Busy = false
	if err != nil {
		b.Err = err.Error()
		return nil
	}

	b.Stage = StageConnected
	b.Databases = nil
	b.Tables = nil
	b.Database = ""
	b.Table = ""
	b.Result = nil
	b.Query = ""
	return &Fetch{Kind: FetchDatabases}
}

// DatabasesDone applies a database list outcome.
func (b *Browser) DatabasesDone(names []string, err error) {
	if err != nil {
		b.Err = err.Error()
		return
	}
	b.Databases = names
}

// SelectDatabase clears the table selection, result set and query text and
// asks for the table list of database.
func (b *Browser) SelectDatabase(database string) *Fetch {
	if b.Stage < StageConnected {
		return nil
	}

	b.Err = ""
	b.Stage = StageDatabaseSelected
	b.Database = database
	b.Table = ""
	b.Tables = nil
	b.Result = nil
	b.Query = ""
	return &Fetch{Kind: FetchTables, Database: database}
}

// TablesDone applies a table list outcome. Lists for a database that is no
// longer selected are dropped.
func (b *Browser) TablesDone(database string, names []string, err error) {
	if database != b.Database {
		return
	}
	if err != nil {
		b.Err = err.Error()
		return
	}
	b.Tables = names
}

// SelectTable seeds the query text and asks for the unsorted table data.
func (b *Browser) SelectTable(table string) *Fetch {
	if b.Stage < StageDatabaseSelected {
		return nil
	}

	b.Stage = StageTableSelected
	b.Table = table
	b.Query = "SELECT * FROM " + table
	b.SortColumn = ""
	b.SortOrder = SortAsc
	return b.tableData()
}

// Sort flips the order when column is already the sort column and ascending,
// otherwise sorts ascending by column. The refetch always goes through the
// table path, even after a custom query.
func (b *Browser) Sort(column string) *Fetch {
	order := SortAsc
	if b.SortColumn == column && b.SortOrder == SortAsc {
		order = SortDesc
	}
	b.SortColumn = column
	b.SortOrder = order

	if b.Table == "" {
		return nil
	}
	return b.tableData()
}

// SetRowLimit updates the row cap. It reports whether the current table
// should be refetched once the debounce delay passes.
func (b *Browser) SetRowLimit(limit int) bool {
	b.Limit = limit
	return b.Table != ""
}

// Refresh re-fetches the current table with the current sort and limit.
func (b *Browser) Refresh() *Fetch {
	if b.Table == "" {
		return nil
	}
	return b.tableData()
}

// ExecuteQuery runs the query text against the selected database.
func (b *Browser) ExecuteQuery() *Fetch {
	if b.Stage < StageConnected || strings.TrimSpace(b.Query) == "" {
		return nil
	}

	b.Err = ""
	b.Busy = true
	b.seq++
	return &Fetch{
		Kind:      FetchQuery,
		Database:  b.Database,
		Statement: b.Query,
		Limit:     b.Limit,
		Seq:       b.seq,
	}
}

// ResultDone applies a table-data or query outcome. The result set is only
// replaced on success, and only while f's database is still selected. Busy
// stays set while a newer fetch is outstanding.
func (b *Browser) ResultDone(f Fetch, result *client.Result, err error) {
	if f.Seq == b.seq {
		b.Busy = false
	}
	if f.Database != b.Database {
		return
	}
	if err != nil {
		b.Err = err.Error()
		return
	}
	b.Result = result
}

func (b *Browser) tableData() *Fetch {
	b.Err = ""
	b.Busy = true
	b.seq++

	f := &Fetch{
		Kind:     FetchTableData,
		Database: b.Database,
		Table:    b.Table,
		Limit:    b.Limit,
		Seq:      b.seq,
	}
	if b.SortColumn != "" {
		f.SortBy = b.SortColumn
		f.SortOrder = b.SortOrder
	}
	return f
}

// nextLimit returns the option after current, wrapping around. A current
// value not in options moves to the first one.
func nextLimit(options []int, current int, step int) int {
	if len(options) == 0 {
		return current
	}
	for i, o := range options {
		if o == current {
			return options[((i+step)%len(options)+len(options))%len(options)]
		}
	}
	return options[0]
}
