package logging

// Standardized field names for structured logging.
const (
	FieldUserID     = "user_id"
	FieldCategory   = "category"
	FieldCategoryID = "category_id"
	FieldKeyword    = "keyword"
	FieldSource     = "source"
	FieldMethod     = "method"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldDays       = "history_days"
	FieldTier       = "tier"
	FieldFile       = "file_path"
	FieldOutputFile = "output_file"
	FieldComponent  = "component"
)
