package rnc_test

import (
	"strings"
	"testing"
	"time"

	"github.com/rncdb/rncdb/pkg/rnc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(id, name, activity, date, status, kind string) []string {
	return []string{
		id, name, "NOMBRE COMERCIAL", activity, "", "", "", "",
		date, status, kind,
	}
}

func TestNew(t *testing.T) {
	fields := row(
		"  101010101 ",
		"  JUAN    PEREZ\t\tDE LA  CRUZ  ",
		" VENTA AL POR MENOR ",
		" 15/06/2023 ",
		" ACTIVO ",
		" NORMAL ",
	)

	rec, err := rnc.New(fields)
	require.NoError(t, err)

	assert.Equal(t, "101010101", rec.ID)
	assert.Equal(t, "JUAN PEREZ DE LA CRUZ", rec.Name)
	assert.Equal(t, "VENTA AL POR MENOR", rec.EconomicActivity)
	assert.True(t, rec.EffectiveDate.Valid)
	assert.Equal(t,
		time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC),
		rec.EffectiveDate.Time,
	)
	assert.Equal(t, "ACTIVO", rec.Status)
	assert.Equal(t, "NORMAL", rec.TaxpayerType)
}

func TestNewIgnoresUnusedFields(t *testing.T) {
	fields := row("1", "A", "B", "", "C", "D")
	fields[2] = "ignored"
	fields[4] = "ignored"
	fields[7] = "ignored"

	rec, err := rnc.New(fields)
	require.NoError(t, err)
	for _, v := range rec.Values() {
		if s, ok := v.(string); ok {
			assert.NotEqual(t, "ignored", s)
		}
	}
}

func TestNewMalformed(t *testing.T) {
	tests := []struct {
		msg    string
		fields []string
	}{
		{"no fields", nil},
		{"too few", strings.Split("1,2,3,4,5,6,7,8,9,10", ",")},
		{"too many", strings.Split("1,2,3,4,5,6,7,8,9,10,11,12", ",")},
		{"blank id", row("   ", "A", "B", "", "C", "D")},
	}

	for _, v := range tests {
		_, err := rnc.New(v.fields)
		assert.ErrorIs(t, err, rnc.ErrMalformedRow, v.msg)
	}
}

func TestValues(t *testing.T) {
	rec, err := rnc.New(row("1", "A", "B", "01/02/2020", "C", "D"))
	require.NoError(t, err)
	assert.Equal(t,
		[]any{"1", "A", "B", "2020-02-01", "C", "D"},
		rec.Values(),
	)
	assert.Len(t, rnc.Columns, len(rec.Values()))

	rec, err = rnc.New(row("1", "A", "B", "00/00/0000", "C", "D"))
	require.NoError(t, err)
	assert.Nil(t, rec.Values()[3])
}

func TestCollapseSpaces(t *testing.T) {
	tests := []struct {
		inp, out string
	}{
		{"", ""},
		{"   ", ""},
		{"ANA", "ANA"},
		{" ANA  MARIA ", "ANA MARIA"},
		{"ANA\t\nMARIA", "ANA MARIA"},
		{"ANA  MARIA", "ANA MARIA"},
	}

	for _, v := range tests {
		assert.Equal(t, v.out, rnc.CollapseSpaces(v.inp), v.inp)
	}
}
