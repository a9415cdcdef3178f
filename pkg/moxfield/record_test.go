package moxfield

import (
	"reflect"
	"testing"
)

// TestNewRecord tests zipping header names with row values.
func TestNewRecord(t *testing.T) {
	tests := []struct {
		name        string
		headers     []string
		values      []string
		wantColumns []string
		wantMap     map[string]string
	}{
		{
			name:        "same length",
			headers:     []string{"Count", "Name"},
			values:      []string{"2", "Opt"},
			wantColumns: []string{"Count", "Name"},
			wantMap:     map[string]string{"Count": "2", "Name": "Opt"},
		},
		{
			name:        "short row leaves columns absent",
			headers:     []string{"Count", "Name", "Foil"},
			values:      []string{"2", "Opt"},
			wantColumns: []string{"Count", "Name"},
			wantMap:     map[string]string{"Count": "2", "Name": "Opt"},
		},
		{
			name:        "long row drops extras",
			headers:     []string{"Count"},
			values:      []string{"2", "Opt", "extra"},
			wantColumns: []string{"Count"},
			wantMap:     map[string]string{"Count": "2"},
		},
		{
			name:        "duplicate header keeps last value",
			headers:     []string{"Name", "Count", "Name"},
			values:      []string{"first", "1", "second"},
			wantColumns: []string{"Name", "Count"},
			wantMap:     map[string]string{"Name": "second", "Count": "1"},
		},
		{
			name:        "empty values are present",
			headers:     []string{"Count", "Foil"},
			values:      []string{"1", ""},
			wantColumns: []string{"Count", "Foil"},
			wantMap:     map[string]string{"Count": "1", "Foil": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecord(tt.headers, tt.values)

			if got := r.Columns(); !reflect.DeepEqual(got, tt.wantColumns) {
				t.Errorf("Columns() = %q, want %q", got, tt.wantColumns)
			}
			if got := r.Map(); !reflect.DeepEqual(got, tt.wantMap) {
				t.Errorf("Map() = %v, want %v", got, tt.wantMap)
			}
			if r.Len() != len(tt.wantColumns) {
				t.Errorf("Len() = %d, want %d", r.Len(), len(tt.wantColumns))
			}
		})
	}
}

// TestRecord_Get tests present, empty and absent lookups.
func TestRecord_Get(t *testing.T) {
	r := NewRecord([]string{"Count", "Foil", "Name"}, []string{"1", ""})

	if v, ok := r.Get("Count"); !ok || v != "1" {
		t.Errorf("Get(Count) = %q, %v; want \"1\", true", v, ok)
	}
	if v, ok := r.Get("Foil"); !ok || v != "" {
		t.Errorf("Get(Foil) = %q, %v; want \"\", true", v, ok)
	}
	if _, ok := r.Get("Name"); ok {
		t.Error("Get(Name) reported present for a column the row did not reach")
	}
	if _, ok := r.Get("Edition"); ok {
		t.Error("Get(Edition) reported present for a column not in the header")
	}
	if v := r.Value("Name"); v != "" {
		t.Errorf("Value(Name) = %q, want empty", v)
	}
}

// TestRecord_Immutable tests that accessors hand out copies.
func TestRecord_Immutable(t *testing.T) {
	r := NewRecord([]string{"Count", "Name"}, []string{"1", "Opt"})

	cols := r.Columns()
	cols[0] = "changed"
	m := r.Map()
	m["Name"] = "changed"

	if r.Columns()[0] != "Count" {
		t.Error("Columns() exposed internal state")
	}
	if r.Value("Name") != "Opt" {
		t.Error("Map() exposed internal state")
	}
}

// TestSplitFields tests the exported field splitter.
func TestSplitFields(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{`"a, b"`, []string{"a, b"}},
		{`"a""b"`, []string{`a"b`}},
		{"single", []string{"single"}},
		{"a,", []string{"a", ""}},
	}

	for _, tt := range tests {
		if got := SplitFields(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitFields(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// TestParseRecords tests header zipping over whole documents.
func TestParseRecords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []map[string]string
	}{
		{
			name:  "empty input",
			input: "",
			want:  []map[string]string{},
		},
		{
			name:  "header only",
			input: "Count,Name\n",
			want:  []map[string]string{},
		},
		{
			name:  "unknown columns retained",
			input: "Count,Tradelist Count,Name\n1,0,Opt",
			want:  []map[string]string{{"Count": "1", "Tradelist Count": "0", "Name": "Opt"}},
		},
		{
			name:  "blank lines skipped",
			input: "Count,Name\n\n1,Opt\n   \n2,Ponder\n",
			want: []map[string]string{
				{"Count": "1", "Name": "Opt"},
				{"Count": "2", "Name": "Ponder"},
			},
		},
		{
			name:  "quoted header names",
			input: "\"Count\",\"Collector Number\"\n3,\"146\"",
			want:  []map[string]string{{"Count": "3", "Collector Number": "146"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := ParseRecords(tt.input)

			got := make([]map[string]string, 0, len(records))
			for _, r := range records {
				got = append(got, r.Map())
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseRecords() = %v, want %v", got, tt.want)
			}
		})
	}
}
