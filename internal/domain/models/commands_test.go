package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		message  string
		wantType CommandType
		wantArgs []string
	}{
		{"/mortality 5 heat stress", CommandMortality, []string{"5", "heat", "stress"}},
		{"/feed 120.5", CommandFeed, []string{"120.5"}},
		{"/weight 1800", CommandWeight, []string{"1800"}},
		{"/sale 100 180 25000", CommandSale, []string{"100", "180", "25000"}},
		{"/sales 10 20 3000", CommandSale, []string{"10", "20", "3000"}},
		{"/expense 500 vaccine", CommandExpense, []string{"500", "vaccine"}},
		{"/rates", CommandRates, nil},
		{"/rate", CommandRates, nil},
		{"/report", CommandReport, nil},
		{"MORTALITY 3", CommandMortality, []string{"3"}},
		{"hello there", CommandUnknown, []string{"there"}},
		{"", CommandUnknown, nil},
		{"   ", CommandUnknown, nil},
	}

	for _, tc := range cases {
		cmd := ParseCommand(tc.message)
		assert.Equal(t, tc.wantType, cmd.Type, "type for %q", tc.message)
		assert.Equal(t, tc.wantArgs, cmd.Args, "args for %q", tc.message)
	}
}

func TestParseCommandKeepsArgumentCasing(t *testing.T) {
	// Only the command word is case-folded; free-text arguments end up in
	// descriptions and confirmations and must keep the farmer's casing.
	cmd := ParseCommand("/EXPENSE 500 Ranikhet Vaccine")
	assert.Equal(t, CommandExpense, cmd.Type)
	assert.Equal(t, []string{"500", "Ranikhet", "Vaccine"}, cmd.Args)

	cmd = ParseCommand("/mortality 4 Heat Stress")
	assert.Equal(t, CommandMortality, cmd.Type)
	assert.Equal(t, []string{"4", "Heat", "Stress"}, cmd.Args)
}
