// Package schema declares the telemetry tables. The store creates them with
// plain DDL; its tests check that the columns match these fields.
package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// ordered stamps a row with its append position and time.
type ordered struct {
	mixin.Schema
}

func (ordered) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").Unique().Immutable(),
		field.Int64("created_at").Immutable().Comment("unix millis"),
	}
}

// LLMRequestEvent is one attempt at generating a challenge. Retries are
// separate rows.
type LLMRequestEvent struct {
	ent.Schema
}

func (LLMRequestEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{ordered{}}
}

func (LLMRequestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("provider").NotEmpty(),
		field.String("model"),
		field.String("purpose").
			NotEmpty().
			Comment(`"challenge-" + mode, e.g. challenge-digraph`),

		field.Int("input_tokens").NonNegative().Default(0),
		field.Int("output_tokens").NonNegative().Default(0),
		field.Int64("latency_ms").NonNegative().Default(0),

		field.Bool("success"),
		field.String("error_message").Default(""),

		// Full transcript for `wordwhiz llm view`.
		field.Text("request_body").Default(""),
		field.Text("response_body").Default(""),
	}
}

func (LLMRequestEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("purpose"),
		index.Fields("model"),
	}
}
