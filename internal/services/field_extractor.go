package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"alfredoptarigan/resume-screener/internal/models"
)

// FieldExtractor pulls structured candidate attributes out of plain text.
// Every method is total: when nothing matches it returns the zero/default value.
type FieldExtractor interface {
	Extract(text string) models.ExtractedProfile
	ExtractName(text string) string
	ExtractEmail(text string) string
	ExtractPhone(text string) string
	ExtractSkills(text string) []string
	ExtractExperience(text string) float64
	ExtractEducation(text string) models.EducationLevel
}

// nameStrategy is one step of the name fallback chain. find returns raw
// candidates in the order they should be tried.
type nameStrategy struct {
	name string
	find func(text string) []string
}

type educationBucket struct {
	level    models.EducationLevel
	patterns []*regexp.Regexp
}

type fieldExtractor struct {
	skills            []string
	education         []educationBucket
	nameStrategies    []nameStrategy
	genericLocalParts map[string]struct{}
}

const (
	nameWord     = `[A-Z][a-zA-Z]+`
	nameSequence = nameWord + `(?:[ \t]+` + nameWord + `){1,3}`
	yearsNumber  = `(\d+(?:\.\d+)?)`
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// Most specific first.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+?\d{1,3}[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\d{10}`),
		regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`),
	}

	// Matched against lowercased text, in priority order.
	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(yearsNumber + `\+?\s*years?\s+(?:of\s+)?experience`),
		regexp.MustCompile(`experience\s*(?:of\s+)?` + yearsNumber + `\+?\s*years?`),
		regexp.MustCompile(`years\s+of\s+experience\s*:\s*` + yearsNumber),
		regexp.MustCompile(`total\s+experience\s*:\s*` + yearsNumber),
	}

	nameHeaderInline   = regexp.MustCompile(`(?i:name)[ \t]*[:|\-][ \t]*(` + nameSequence + `)`)
	nameHeaderNewline  = regexp.MustCompile(`(?i:name)[ \t]*\n[ \t]*(` + nameSequence + `)`)
	nameStandaloneLine = regexp.MustCompile(`(?m)^[ \t]*(` + nameSequence + `)[ \t]*$`)
	nameBeforeContact  = regexp.MustCompile(`(` + nameSequence + `)[ \t]*\n[^\n]*?(?i:email|phone|address)[ \t]*:`)
	nameBeforeEmail    = regexp.MustCompile(`(` + nameSequence + `)[ \t]*\n[^\n]*@`)

	// Matched against lowercased text.
	emailNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`([a-z]+)\.([a-z]+)@`),
		regexp.MustCompile(`([a-z]+)_([a-z]+)@`),
	}

	nonWordChars = regexp.MustCompile(`[^\w\s]`)
)

func NewFieldExtractor(catalog *Catalog) FieldExtractor {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	catalog = catalog.normalized()

	fe := &fieldExtractor{
		skills:            catalog.Skills,
		genericLocalParts: make(map[string]struct{}, len(catalog.GenericLocalParts)),
	}

	for _, part := range catalog.GenericLocalParts {
		fe.genericLocalParts[part] = struct{}{}
	}

	for _, level := range models.EducationPriority {
		bucket := educationBucket{level: level}
		for _, keyword := range catalog.Education[level] {
			bucket.patterns = append(bucket.patterns, keywordPattern(keyword))
		}
		fe.education = append(fe.education, bucket)
	}

	fe.nameStrategies = []nameStrategy{
		{name: "header", find: firstSubmatch(nameHeaderInline, nameHeaderNewline)},
		{name: "standalone_line", find: firstSubmatch(nameStandaloneLine)},
		{name: "contact_context", find: firstSubmatch(nameBeforeContact, nameBeforeEmail)},
		{name: "east_asian_surname", find: firstSubmatch(surnamePattern(catalog.Surnames))},
		{name: "email_local_part", find: fe.namesFromEmail},
	}

	return fe
}

// Extract implements FieldExtractor.
func (fe *fieldExtractor) Extract(text string) models.ExtractedProfile {
	text = CleanText(text)

	return models.ExtractedProfile{
		Name:            fe.ExtractName(text),
		Email:           fe.ExtractEmail(text),
		Phone:           fe.ExtractPhone(text),
		Skills:          fe.ExtractSkills(text),
		ExperienceYears: fe.ExtractExperience(text),
		EducationLevel:  fe.ExtractEducation(text),
	}
}

// ExtractEmail implements FieldExtractor.
func (fe *fieldExtractor) ExtractEmail(text string) string {
	return emailPattern.FindString(text)
}

// ExtractPhone implements FieldExtractor.
func (fe *fieldExtractor) ExtractPhone(text string) string {
	for _, pattern := range phonePatterns {
		if match := pattern.FindString(text); match != "" {
			return match
		}
	}
	return ""
}

// ExtractName implements FieldExtractor.
func (fe *fieldExtractor) ExtractName(text string) string {
	for _, strategy := range fe.nameStrategies {
		for _, candidate := range strategy.find(text) {
			if name, ok := normalizeName(candidate); ok {
				return name
			}
		}
	}
	return models.UnknownName
}

// ExtractSkills implements FieldExtractor.
func (fe *fieldExtractor) ExtractSkills(text string) []string {
	lower := strings.ToLower(text)

	found := make([]string, 0)
	for _, skill := range fe.skills {
		if strings.Contains(lower, skill) {
			found = append(found, skill)
		}
	}

	return sortedSet(found)
}

// ExtractExperience implements FieldExtractor.
func (fe *fieldExtractor) ExtractExperience(text string) float64 {
	lower := strings.ToLower(text)

	for _, pattern := range experiencePatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		if years, err := strconv.ParseFloat(match[1], 64); err == nil {
			return years
		}
	}
	return 0
}

// ExtractEducation implements FieldExtractor.
func (fe *fieldExtractor) ExtractEducation(text string) models.EducationLevel {
	for _, bucket := range fe.education {
		for _, pattern := range bucket.patterns {
			if pattern.MatchString(text) {
				return bucket.level
			}
		}
	}
	return models.EducationNotSpecified
}

// namesFromEmail rebuilds "First Last" candidates from email local parts such
// as first.last@ or first_last@, skipping generic mailboxes.
func (fe *fieldExtractor) namesFromEmail(text string) []string {
	lower := strings.ToLower(text)

	var candidates []string
	for _, pattern := range emailNamePatterns {
		for _, match := range pattern.FindAllStringSubmatch(lower, -1) {
			if _, generic := fe.genericLocalParts[match[1]]; generic {
				continue
			}
			candidates = append(candidates, match[1]+" "+match[2])
		}
	}
	return candidates
}

// normalizeName collapses whitespace, title-cases each word, strips non-word
// characters and keeps the first two tokens. Anything that does not end up
// as exactly two tokens is rejected.
func normalizeName(raw string) (string, bool) {
	words := strings.Fields(raw)
	for i, word := range words {
		words[i] = capitalize(word)
	}

	cleaned := nonWordChars.ReplaceAllString(strings.Join(words, " "), "")
	parts := strings.Fields(cleaned)
	if len(parts) > 2 {
		parts = parts[:2]
	}
	if len(parts) != 2 {
		return "", false
	}
	return parts[0] + " " + parts[1], true
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func firstSubmatch(patterns ...*regexp.Regexp) func(string) []string {
	return func(text string) []string {
		var candidates []string
		for _, pattern := range patterns {
			if match := pattern.FindStringSubmatch(text); match != nil {
				candidates = append(candidates, match[1])
			}
		}
		return candidates
	}
}

func surnamePattern(surnames []string) *regexp.Regexp {
	if len(surnames) == 0 {
		// Never matches.
		return regexp.MustCompile(`[^\s\S]`)
	}

	quoted := make([]string, len(surnames))
	for i, surname := range surnames {
		quoted[i] = regexp.QuoteMeta(surname)
	}

	return regexp.MustCompile(`\b(` + nameWord + `[ \t]+(?:` + strings.Join(quoted, "|") + `))\b`)
}

// keywordPattern matches keyword case-insensitively as a whole token, so that
// short keywords like "bs" do not fire inside longer words.
func keywordPattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(keyword) + `(?:$|[^\p{L}\p{N}_])`)
}
