// ABOUTME: Translation stage: chunked machine translation of Indic-language transcripts to English
// ABOUTME: Unsupported or English languages pass through without calling the translator
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/tubesum/internal/models"
)

const (
	// TranslationChunkSize is the maximum characters sent per translation request
	TranslationChunkSize = 512
	// TargetLanguage is the NLLB code all translations are produced in
	TargetLanguage = "eng_Latn"
)

// SupportedLanguages maps transcript language codes to NLLB-200 source codes
var SupportedLanguages = map[string]string{
	"hi":  "hin_Deva",
	"bn":  "ben_Beng",
	"ta":  "tam_Taml",
	"te":  "tel_Telu",
	"mr":  "mar_Deva",
	"gu":  "guj_Gujr",
	"kn":  "kan_Knda",
	"ml":  "mal_Mlym",
	"pa":  "pan_Guru",
	"or":  "ory_Orya",
	"sa":  "san_Deva",
	"bho": "bho_Deva",
	"mai": "mai_Deva",
	"mag": "mag_Deva",
	"awa": "awa_Deva",
}

// Translator produces the single best translation of text
type Translator interface {
	Translate(ctx context.Context, text, srcLang, tgtLang string) (string, error)
}

// TranslationStage translates transcript text into English when needed
type TranslationStage struct {
	translator Translator
}

// NewTranslationStage creates a TranslationStage. translator may be nil, in
// which case any text that needs translation fails with ErrTranslatorUnavailable.
func NewTranslationStage(translator Translator) *TranslationStage {
	return &TranslationStage{translator: translator}
}

// NeedsTranslation reports whether text in langCode is sent to the translator
func NeedsTranslation(langCode string) bool {
	if langCode == "" || langCode == "en" {
		return false
	}
	_, ok := SupportedLanguages[langCode]
	return ok
}

// Process returns text translated to English, or text unchanged when langCode
// is empty, English, or unsupported. Chunks are translated in order and joined
// with single spaces.
func (s *TranslationStage) Process(ctx context.Context, text, langCode string) (string, error) {
	if !NeedsTranslation(langCode) {
		return text, nil
	}
	if s.translator == nil {
		return "", models.NewStageError(models.StageTranslation, models.ErrTranslatorUnavailable)
	}

	srcLang := SupportedLanguages[langCode]
	chunks := ChunkText(text, TranslationChunkSize)
	translated := make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return "", models.NewStageError(models.StageTranslation, err)
		}
		out, err := s.translator.Translate(ctx, chunk, srcLang, TargetLanguage)
		if err != nil {
			return "", models.NewStageError(models.StageTranslation,
				fmt.Errorf("chunk %d/%d (%s): %w", i+1, len(chunks), srcLang, err))
		}
		translated = append(translated, out)
	}

	return strings.Join(translated, " "), nil
}
