package nlsql

import (
	"context"

	"github.com/Alay2810/vercel-ai-sql-backend/internal/schema"
)

// Translator turns a natural-language question plus schema context into an
// executable SQL statement via the language model.
type Translator struct {
	completer Completer
}

// NewTranslator creates a translator backed by the given completion client.
func NewTranslator(completer Completer) *Translator {
	return &Translator{completer: completer}
}

// Translate builds the prompt from the formatted schemas and the question,
// invokes the model, parses the reply and classifies the SQL for
// destructive intent.
func (t *Translator) Translate(ctx context.Context, schemas []schema.TableSchema, question string) (TranslationResult, error) {
	prompt := BuildPrompt(schema.FormatAll(schemas), question)

	reply, err := t.completer.Complete(ctx, prompt)
	if err != nil {
		return TranslationResult{}, err
	}

	return Classify(ParseReply(reply)), nil
}
