package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	llmRequestEventsTable = "llm_request_events"
	generationEventsTable = "generation_events"
)

// eventColumns are the base columns shared by every event table: a row id,
// the global sequence number and the UTC timestamp.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
}

var (
	llmRequestEventsColumns = append(eventColumns(),
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "request_id", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	llmRequestEvents = &schema.Table{
		Name:       llmRequestEventsTable,
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmRequestEventsColumns[2]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmRequestEventsColumns[5]}},
			{Name: "llmrequestevent_request_id", Columns: []*schema.Column{llmRequestEventsColumns[6]}},
		},
	}

	generationEventsColumns = append(eventColumns(),
		&schema.Column{Name: "request_id", Type: field.TypeString, Unique: true},
		&schema.Column{Name: "age_group", Type: field.TypeString},
		&schema.Column{Name: "content_type", Type: field.TypeString},
		&schema.Column{Name: "topic", Type: field.TypeString},
		&schema.Column{Name: "failed", Type: field.TypeBool},
		&schema.Column{Name: "error_kind", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "items", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
	)
	generationEvents = &schema.Table{
		Name:       generationEventsTable,
		Columns:    generationEventsColumns,
		PrimaryKey: []*schema.Column{generationEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "generationevent_timestamp", Columns: []*schema.Column{generationEventsColumns[2]}},
		},
	}

	tables = []*schema.Table{llmRequestEvents, generationEvents}
)
