package factor

import (
	"strconv"
	"strings"

	domain "consignado-backend/internal/domain/factor"
)

const headerToken = "prazo"

type ParsedFactor struct {
	Term   int
	Day    int
	Factor string
}

// ParseCSV reads "term<delim>day<delim>factor" lines. The first line is a
// header when it mentions "prazo". Lines that cannot be read are skipped;
// if none can, ErrNoValidFactors is returned.
//
// Each line uses ';' as delimiter when it has one, otherwise ','. That keeps
// "24;1;0,052" intact as factor "0.052".
//
// A (term, day) pair seen twice keeps the later value at its first position.
func ParseCSV(content string) ([]ParsedFactor, error) {
	content = strings.TrimSpace(strings.TrimPrefix(content, "\ufeff"))
	if content == "" {
		return nil, domain.ErrNoValidFactors
	}
	lines := strings.Split(content, "\n")

	start := 0
	if strings.Contains(strings.ToLower(lines[0]), headerToken) {
		start = 1
	}

	out := make([]ParsedFactor, 0, len(lines)-start)
	seen := make(map[[2]int]int, len(lines))
	for _, raw := range lines[start:] {
		pf, ok := parseLine(raw)
		if !ok {
			continue
		}
		key := [2]int{pf.Term, pf.Day}
		if i, dup := seen[key]; dup {
			out[i] = pf
			continue
		}
		seen[key] = len(out)
		out = append(out, pf)
	}
	if len(out) == 0 {
		return nil, domain.ErrNoValidFactors
	}
	return out, nil
}

func parseLine(raw string) (ParsedFactor, bool) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return ParsedFactor{}, false
	}
	delim := ","
	if strings.Contains(line, ";") {
		delim = ";"
	}
	parts := strings.Split(line, delim)
	if len(parts) < 3 {
		return ParsedFactor{}, false
	}
	term, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return ParsedFactor{}, false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return ParsedFactor{}, false
	}
	value := normalizeFactor(parts[2])
	if value == "" {
		return ParsedFactor{}, false
	}
	return ParsedFactor{Term: term, Day: day, Factor: value}, true
}

// normalizeFactor trims and turns a decimal comma into a period.
func normalizeFactor(s string) string {
	return strings.Replace(strings.TrimSpace(s), ",", ".", 1)
}
