package storage

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"consignado-backend/pkg/id"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const uniqueSuffixLen = 8

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeKeyChar = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	nonDigit      = regexp.MustCompile(`\D`)
)

// FormatNationalID renders an 11-digit CPF as ddd.ddd.ddd-dd. Other inputs are returned trimmed.
func FormatNationalID(raw string) string {
	digits := nonDigit.ReplaceAllString(raw, "")
	if len(digits) != 11 {
		return strings.TrimSpace(raw)
	}
	return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11]
}

// FolderName is the human readable client folder, e.g. "JOSÉ DA SILVA 123.456.789-09".
func FolderName(clientName, nationalID string) string {
	return strings.ToUpper(strings.TrimSpace(clientName)) + " " + FormatNationalID(nationalID)
}

// FolderToken turns a folder name into a key-safe prefix: accents folded,
// whitespace to underscores, everything outside [A-Za-z0-9_-] dropped.
func FolderToken(folderName string) string {
	folded := foldDiacritics(folderName)
	folded = whitespaceRun.ReplaceAllString(strings.TrimSpace(folded), "_")
	return unsafeKeyChar.ReplaceAllString(folded, "")
}

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// UniqueFileName inserts "_<suffix>" before the extension; names without one get ".bin".
func UniqueFileName(fileName, suffix string) string {
	fileName = strings.TrimSpace(fileName)
	ext := path.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	if ext == "" || ext == "." {
		ext = ".bin"
	}
	if base == "" {
		base = "document"
	}
	return base + "_" + suffix + ext
}

func newUniqueFileName(fileName string) string {
	return UniqueFileName(fileName, id.NewSuffix(uniqueSuffixLen))
}

// ObjectKey is documents/<folder>/<name>, or documents/<name> without a folder.
func ObjectKey(folder, fileName string) string {
	folder = strings.Trim(folder, "/ ")
	if folder == "" {
		return "documents/" + fileName
	}
	return "documents/" + folder + "/" + fileName
}
