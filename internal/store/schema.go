package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions handed to the ent migrator. Column names double as the
// identifiers used by the query builders in this package.
var (
	learnersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "name", Type: field.TypeString},
		{Name: "bio", Type: field.TypeString, Default: ""},
		{Name: "phone", Type: field.TypeString, Default: ""},
		{Name: "preferred_language", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "balance", Type: field.TypeInt, Default: 0},
		{Name: "current_streak", Type: field.TypeInt, Default: 0},
		{Name: "highest_streak", Type: field.TypeInt, Default: 0},
		{Name: "last_activity", Type: field.TypeString, Nullable: true},
		{Name: "bypass_attempts_used", Type: field.TypeInt, Default: 0},
		{Name: "updated_at", Type: field.TypeTime},
	}
	learnersTable = &schema.Table{
		Name:       "learners",
		Columns:    learnersColumns,
		PrimaryKey: []*schema.Column{learnersColumns[0]},
	}

	activityColumns = []*schema.Column{
		{Name: "day", Type: field.TypeString},
		{Name: "time_spent_seconds", Type: field.TypeInt64, Default: 0},
		{Name: "completed_any_module", Type: field.TypeBool, Default: false},
	}
	activityTable = &schema.Table{
		Name:       "activity_logs",
		Columns:    activityColumns,
		PrimaryKey: []*schema.Column{activityColumns[0]},
	}

	roadmapsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "topic", Type: field.TypeString},
		{Name: "language", Type: field.TypeString},
		{Name: "modules", Type: field.TypeJSON},
		{Name: "further_topics", Type: field.TypeJSON},
		{Name: "progress", Type: field.TypeJSON},
		{Name: "bonus_awarded", Type: field.TypeBool, Default: false},
		{Name: "active", Type: field.TypeBool, Default: false},
		{Name: "created_at", Type: field.TypeTime},
	}
	roadmapsTable = &schema.Table{
		Name:       "roadmaps",
		Columns:    roadmapsColumns,
		PrimaryKey: []*schema.Column{roadmapsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "roadmap_active", Columns: []*schema.Column{roadmapsColumns[7]}},
		},
	}

	llmEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	llmEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventsColumns[5]}},
		},
	}

	purchasesColumns = []*schema.Column{
		{Name: "payment_id", Type: field.TypeString},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "pack_id", Type: field.TypeString},
		{Name: "diamonds", Type: field.TypeInt},
		{Name: "amount_paise", Type: field.TypeInt64},
	}
	purchasesTable = &schema.Table{
		Name:       "purchases",
		Columns:    purchasesColumns,
		PrimaryKey: []*schema.Column{purchasesColumns[0]},
	}

	applicationsColumns = []*schema.Column{
		{Name: "job_id", Type: field.TypeString},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
	applicationsTable = &schema.Table{
		Name:       "job_applications",
		Columns:    applicationsColumns,
		PrimaryKey: []*schema.Column{applicationsColumns[0]},
	}

	groupsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString},
		{Name: "topic", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Default: ""},
		{Name: "members", Type: field.TypeInt, Default: 0},
		{Name: "joined", Type: field.TypeBool, Default: false},
		{Name: "created_at", Type: field.TypeTime},
	}
	groupsTable = &schema.Table{
		Name:       "study_groups",
		Columns:    groupsColumns,
		PrimaryKey: []*schema.Column{groupsColumns[0]},
	}

	chatColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "thread_id", Type: field.TypeString},
		{Name: "role", Type: field.TypeString},
		{Name: "content", Type: field.TypeString, Size: 2147483647},
	}
	chatTable = &schema.Table{
		Name:       "chat_messages",
		Columns:    chatColumns,
		PrimaryKey: []*schema.Column{chatColumns[0]},
		Indexes: []*schema.Index{
			{Name: "chatmessage_thread_id", Columns: []*schema.Column{chatColumns[3]}},
		},
	}

	// Tables lists every table in migration order.
	Tables = []*schema.Table{
		learnersTable,
		activityTable,
		roadmapsTable,
		llmEventsTable,
		purchasesTable,
		applicationsTable,
		groupsTable,
		chatTable,
	}
)
