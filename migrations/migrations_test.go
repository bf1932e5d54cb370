package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
)

// The CHECK constraints in the schema must accept every status the domain
// layer can write, or lifecycle updates fail at the database.
func TestInitMigrationAcceptsAllDomainStatuses(t *testing.T) {
	raw, err := FS.ReadFile("0001_init.up.sql")
	require.NoError(t, err)
	schema := string(raw)

	tableCheck := func(table string) string {
		t.Helper()
		idx := strings.Index(schema, "CREATE TABLE "+table)
		require.GreaterOrEqual(t, idx, 0, "table %s missing from init migration", table)
		rest := schema[idx:]
		end := strings.Index(rest, ";")
		require.GreaterOrEqual(t, end, 0)
		return rest[:end]
	}

	appointments := tableCheck("appointments")
	for _, s := range []domain.AppointmentStatus{
		domain.StatusRequested, domain.StatusBooked, domain.StatusCancelled,
		domain.StatusDenied, domain.StatusNoShow, domain.StatusCompleted,
	} {
		require.Contains(t, appointments, "'"+string(s)+"'", "appointments CHECK rejects %s", s)
	}

	ruleSets := tableCheck("rule_sets")
	for _, s := range []domain.RuleSetStatus{
		domain.RuleSetDraft, domain.RuleSetActive, domain.RuleSetSuperseded, domain.RuleSetCancelled,
	} {
		require.Contains(t, ruleSets, "'"+string(s)+"'", "rule_sets CHECK rejects %s", s)
	}

	exceptions := tableCheck("rule_exceptions")
	for _, s := range []domain.ExceptionStatus{
		domain.ExceptionActive, domain.ExceptionSuperseded, domain.ExceptionCancelled,
	} {
		require.Contains(t, exceptions, "'"+string(s)+"'", "rule_exceptions CHECK rejects %s", s)
	}
	for _, k := range []domain.ExceptionKind{domain.ExceptionBlackout, domain.ExceptionExtraOpen} {
		require.Contains(t, exceptions, "'"+string(k)+"'", "rule_exceptions CHECK rejects kind %s", k)
	}

	slots := tableCheck("visit_slots")
	for _, s := range []domain.SlotStatus{domain.SlotOpen, domain.SlotBlocked} {
		require.Contains(t, slots, "'"+string(s)+"'", "visit_slots CHECK rejects %s", s)
	}
}
