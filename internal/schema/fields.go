package schema

// FieldType is the semantic type tag for a target-schema field.
type FieldType int

const (
	TypeString FieldType = iota
	TypeInt
	TypeNumber // int or float
	TypeBool
	TypeDatetime // ISO-8601 string
	TypeList
)

func (t FieldType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeNumber:
		return "number"
	case TypeBool:
		return "bool"
	case TypeDatetime:
		return "datetime"
	case TypeList:
		return "list"
	default:
		return "unknown"
	}
}

// FieldSpec describes one target-schema field. The transformer and validator
// both consume this table; extending the schema means extending it here.
type FieldSpec struct {
	Name     string
	Type     FieldType
	Required bool
	Nullable bool
	Allowed  []string
}

// TargetSchema is the ordered declarative table of persisted-record fields.
// Order matters: completeness errors are reported in declaration order.
var TargetSchema = []FieldSpec{
	{Name: "external_job_id", Type: TypeString, Required: true},
	{Name: "job_source", Type: TypeString, Required: true, Allowed: []string{"COMPANY_WEBSITE", "JOB_FEED"}},
	{Name: "feed_id", Type: TypeInt, Nullable: true},
	{Name: "job_hash", Type: TypeString, Required: true},
	{Name: "created_at", Type: TypeDatetime, Required: true},
	{Name: "updated_at", Type: TypeDatetime, Required: true},
	{Name: "posted_at", Type: TypeDatetime, Required: true},
	{Name: "expires_at", Type: TypeDatetime, Nullable: true},
	{Name: "status", Type: TypeString, Required: true},
	{Name: "company_name", Type: TypeString, Required: true},
	{Name: "title", Type: TypeString, Required: true},
	{Name: "description", Type: TypeString, Required: true},
	{Name: "application_url", Type: TypeString, Nullable: true},
	{Name: "employment_type", Type: TypeString, Nullable: true},
	{Name: "is_remote", Type: TypeBool, Required: true},
	{Name: "is_multi_location", Type: TypeBool, Required: true},
	{Name: "is_international", Type: TypeBool, Required: true},
	{Name: "locations", Type: TypeList, Nullable: true},
	{Name: "salary_min", Type: TypeNumber, Nullable: true},
	{Name: "salary_max", Type: TypeNumber, Nullable: true},
	{Name: "salary_period", Type: TypeString, Nullable: true},
	{Name: "currency", Type: TypeString, Nullable: true},
}

// fieldIndex is a name lookup over TargetSchema.
var fieldIndex = func() map[string]FieldSpec {
	idx := make(map[string]FieldSpec, len(TargetSchema))
	for _, f := range TargetSchema {
		idx[f.Name] = f
	}
	return idx
}()

// Lookup returns the field spec for a target field name.
func Lookup(name string) (FieldSpec, bool) {
	f, ok := fieldIndex[name]
	return f, ok
}
