package store

import (
	"regexp"
	"strings"
	"testing"
)

var createRe = regexp.MustCompile(`CREATE (?:TABLE|MATERIALIZED VIEW) IF NOT EXISTS (\w+)`)
var dropRe = regexp.MustCompile(`DROP (?:TABLE|VIEW) IF EXISTS (\w+)`)

func createdObjects(t *testing.T) map[string]bool {
	t.Helper()
	created := make(map[string]bool)
	for _, ddl := range schemaDDL {
		m := createRe.FindStringSubmatch(ddl)
		if m == nil {
			t.Fatalf("schema statement has no recognizable CREATE: %.60s", ddl)
		}
		created[m[1]] = true
	}
	return created
}

func TestSchemaCreatesEveryTable(t *testing.T) {
	created := createdObjects(t)
	for _, name := range []string{
		TableBooks, TableCounterparties, TableInstruments, TableTrades,
		TableRisk, TableJobs, TableOverrides, TableRiskView, TableRiskViewMV,
		TableRiskAgg, TableRiskAggMV,
	} {
		if !created[name] {
			t.Errorf("schema does not create %s", name)
		}
	}
}

func TestDropMirrorsCreate(t *testing.T) {
	created := createdObjects(t)

	dropped := make(map[string]bool)
	for _, ddl := range dropDDL {
		m := dropRe.FindStringSubmatch(ddl)
		if m == nil {
			t.Fatalf("drop statement has no recognizable DROP: %.60s", ddl)
		}
		dropped[m[1]] = true
	}

	for name := range created {
		if !dropped[name] {
			t.Errorf("%s is created but never dropped", name)
		}
	}
	for name := range dropped {
		if !created[name] {
			t.Errorf("%s is dropped but never created", name)
		}
	}
}

// The enriched view must join all three reference tables and carry the
// counterparty and instrument attributes into risk_view, since the rollup
// and downstream consumers read them from there.
func TestRiskViewEnrichment(t *testing.T) {
	var mv, view string
	for _, ddl := range schemaDDL {
		m := createRe.FindStringSubmatch(ddl)
		if m == nil {
			continue
		}
		switch m[1] {
		case TableRiskViewMV:
			mv = ddl
		case TableRiskView:
			view = ddl
		}
	}
	if mv == "" || view == "" {
		t.Fatal("risk_view or risk_view_mv missing from schema")
	}

	joins := []string{
		"INNER JOIN " + TableCounterparties + " cp ON r.counterparty = cp.id",
		"INNER JOIN " + TableBooks + " h ON r.book = h.book",
		"INNER JOIN " + TableInstruments + " inst ON r.instrumentId = inst.id",
	}
	for _, j := range joins {
		if !strings.Contains(mv, j) {
			t.Errorf("risk_view_mv missing join %q", j)
		}
	}

	enrichment := []string{
		"cpSector", "cpRating", "instrumentName", "instrumentCurrency",
		"instrumentCountry", "instrumentSector", "hmsTrader", "hmsDesk",
	}
	for _, col := range enrichment {
		if !strings.Contains(view, col) {
			t.Errorf("risk_view missing column %s", col)
		}
		if !strings.Contains(mv, col) {
			t.Errorf("risk_view_mv does not select %s", col)
		}
	}
}
