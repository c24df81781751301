package factor

import (
	"testing"

	domain "consignado-backend/internal/domain/factor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV_HeaderAndCommaDecimal(t *testing.T) {
	got, err := ParseCSV("prazo;dia;fator\n12;1;0.095\n24;1;0,052")
	require.NoError(t, err)
	assert.Equal(t, []ParsedFactor{
		{Term: 12, Day: 1, Factor: "0.095"},
		{Term: 24, Day: 1, Factor: "0.052"},
	}, got)
}

func TestParseCSV_Cases(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    []ParsedFactor
		wantErr error
	}{
		{
			name: "no header, comma delimited",
			in:   "12,1,0.09500\n12,2,0.09400",
			want: []ParsedFactor{{12, 1, "0.09500"}, {12, 2, "0.09400"}},
		},
		{
			name: "header detection is case-insensitive",
			in:   "PRAZO,DIA,FATOR\n36,5,0.04",
			want: []ParsedFactor{{36, 5, "0.04"}},
		},
		{
			name: "crlf, blank lines and padding",
			in:   "\r\n  12 ; 1 ; 0,095 \r\n\r\n24;2;0.05\r\n",
			want: []ParsedFactor{{12, 1, "0.095"}, {24, 2, "0.05"}},
		},
		{
			name: "invalid lines skipped",
			in:   "prazo;dia;fator\nabc;1;0.1\n12;x;0.1\n12;3\n12;4;\n12;5;0.09",
			want: []ParsedFactor{{12, 5, "0.09"}},
		},
		{
			name: "extra columns ignored",
			in:   "12;1;0.095;comment",
			want: []ParsedFactor{{12, 1, "0.095"}},
		},
		{
			name: "duplicate key keeps later value",
			in:   "12;1;0.095\n24;1;0.05\n12;1;0.096",
			want: []ParsedFactor{{12, 1, "0.096"}, {24, 1, "0.05"}},
		},
		{
			name: "first line without prazo is data",
			in:   "12;1;0.095",
			want: []ParsedFactor{{12, 1, "0.095"}},
		},
		{name: "empty", in: "   \n ", wantErr: domain.ErrNoValidFactors},
		{name: "header only", in: "prazo;dia;fator", wantErr: domain.ErrNoValidFactors},
		{name: "nothing valid", in: "a;b;c\n1;2", wantErr: domain.ErrNoValidFactors},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCSV(tc.in)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
