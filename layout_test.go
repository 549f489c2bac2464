package fmtstream_test

import (
	"testing"

	"github.com/bjaus/fmtstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLayout(t *testing.T) {
	t.Parallel()
	l, err := fmtstream.ParseLayout([]byte("lmargin: 2\nrmargin: 79\nwmargin: 29\n"))
	require.NoError(t, err)
	assert.Equal(t, fmtstream.Layout{LeftMargin: 2, RightMargin: 79, WrapMargin: 29}, l)
	assert.False(t, l.Truncate())
}

func TestParseLayoutTruncate(t *testing.T) {
	t.Parallel()
	l, err := fmtstream.ParseLayout([]byte("rmargin: 40\ntruncate: true\n"))
	require.NoError(t, err)
	assert.Equal(t, fmtstream.NoWrap, l.WrapMargin)
	assert.True(t, l.Truncate())
}

func TestParseLayoutErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown key", "rmargin: 40\ncolumns: 3\n", fmtstream.ErrInvalidLayout},
		{"not a number", "rmargin: wide\n", fmtstream.ErrInvalidLayout},
		{"margins out of order", "lmargin: 10\nrmargin: 5\n", fmtstream.ErrInvalidMargins},
		{"empty", "", fmtstream.ErrInvalidMargins},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := fmtstream.ParseLayout([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMarshalLayout(t *testing.T) {
	t.Parallel()
	want := fmtstream.Layout{LeftMargin: 2, RightMargin: 79, WrapMargin: fmtstream.NoWrap}
	data, err := fmtstream.MarshalLayout(want)
	require.NoError(t, err)
	assert.Equal(t, "lmargin: 2\nrmargin: 79\nwmargin: -1\n", string(data))

	got, err := fmtstream.ParseLayout(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParseHelpFormat(t *testing.T) {
	t.Parallel()
	base := fmtstream.Layout{LeftMargin: 0, RightMargin: 79, WrapMargin: 0}
	tests := []struct {
		name string
		in   string
		want fmtstream.Layout
	}{
		{"empty", "", base},
		{"commas", "rmargin=60,lmargin=2,wmargin=4", fmtstream.Layout{LeftMargin: 2, RightMargin: 60, WrapMargin: 4}},
		{"spaces", "rmargin=60 lmargin=2", fmtstream.Layout{LeftMargin: 2, RightMargin: 60}},
		{"truncate", "truncate", fmtstream.Layout{RightMargin: 79, WrapMargin: fmtstream.NoWrap}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := fmtstream.ParseHelpFormat(base, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHelpFormatErrors(t *testing.T) {
	t.Parallel()
	base := fmtstream.Layout{RightMargin: 79}
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"no value", "rmargin", fmtstream.ErrInvalidLayout},
		{"not a number", "rmargin=wide", fmtstream.ErrInvalidLayout},
		{"unknown", "dup-args=1", fmtstream.ErrInvalidLayout},
		{"out of order", "lmargin=90", fmtstream.ErrInvalidMargins},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := fmtstream.ParseHelpFormat(base, tt.in)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, base, got)
		})
	}
}

func TestLayoutFromEnv(t *testing.T) {
	base := fmtstream.Layout{RightMargin: 79}

	t.Setenv("FMTSTREAM_TEST_FMT", "")
	l, err := fmtstream.LayoutFromEnv("FMTSTREAM_TEST_FMT", base)
	require.NoError(t, err)
	assert.Equal(t, base, l)

	t.Setenv("FMTSTREAM_TEST_FMT", "rmargin=50,wmargin=10")
	l, err = fmtstream.LayoutFromEnv("FMTSTREAM_TEST_FMT", base)
	require.NoError(t, err)
	assert.Equal(t, fmtstream.Layout{RightMargin: 50, WrapMargin: 10}, l)
}
