package num

import "testing"

func TestParseInt64(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
		errKind ParseErrKind
	}{
		{name: "plain", input: "42", want: 42},
		{name: "spaces", input: "  -17\n", want: -17},
		{name: "plus", input: "+8", want: 8},
		{name: "underscores", input: "1_000_000", want: 1000000},
		{name: "empty", input: "   ", wantErr: true, errKind: ParseEmpty},
		{name: "sign only", input: "-", wantErr: true, errKind: ParseNoDigits},
		{name: "bad char", input: "12a", wantErr: true, errKind: ParseBadChar},
		{name: "double sign", input: "1-2", wantErr: true, errKind: ParseMultipleSigns},
		{name: "leading underscore", input: "_1", wantErr: true, errKind: ParseBadUnderscore},
		{name: "double underscore", input: "1__0", wantErr: true, errKind: ParseBadUnderscore},
		{name: "range", input: "9223372036854775808", wantErr: true, errKind: ParseRange},
		{name: "float text", input: "1.5", wantErr: true, errKind: ParseBadChar},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseInt64(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if err.Kind != tc.errKind {
					t.Fatalf("error kind = %v, want %v", err.Kind, tc.errKind)
				}
				if err.Overflows() != (tc.errKind == ParseRange) {
					t.Fatalf("Overflows() = %v for %v", err.Overflows(), err.Kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("ParseInt64() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		class   FloatClass
		want    float64
		wantErr bool
		errKind ParseErrKind
	}{
		{name: "finite", input: "1.25", want: 1.25},
		{name: "exponent", input: "2e3", want: 2000},
		{name: "leading dot", input: " .5 ", want: 0.5},
		{name: "underscore", input: "1_000.5", want: 1000.5},
		{name: "inf", input: "inf", class: FloatPosInf},
		{name: "neg infinity", input: "-Infinity", class: FloatNegInf},
		{name: "nan", input: "NaN", class: FloatNaN},
		{name: "huge", input: "1e400", class: FloatPosInf},
		{name: "empty", input: "", wantErr: true, errKind: ParseEmpty},
		{name: "dots", input: "1.2.3", wantErr: true, errKind: ParseMultipleDots},
		{name: "dangling exponent", input: "1e", wantErr: true, errKind: ParseBadChar},
		{name: "letters", input: "abc", wantErr: true, errKind: ParseBadChar},
		{name: "dot only", input: ".", wantErr: true, errKind: ParseNoDigits},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, class, err := ParseFloat(tc.input, 64)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if err.Kind != tc.errKind {
					t.Fatalf("error kind = %v, want %v", err.Kind, tc.errKind)
				}
				if err.Overflows() != (tc.errKind == ParseRange) {
					t.Fatalf("Overflows() = %v for %v", err.Overflows(), err.Kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if class != tc.class {
				t.Fatalf("class = %v, want %v", class, tc.class)
			}
			if class == FloatFinite && got != tc.want {
				t.Fatalf("ParseFloat() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseExt(t *testing.T) {
	x, class, err := ParseExt("0.1")
	if err != nil || class != FloatFinite {
		t.Fatalf("ParseExt(0.1) = %v, %v, %v", x, class, err)
	}
	if x.Prec() != ExtPrec {
		t.Fatalf("Prec() = %d, want %d", x.Prec(), ExtPrec)
	}
	if _, exact := ExactFloat64(x); exact {
		t.Fatalf("0.1 at extended precision should not be an exact float64")
	}
	if _, class, _ := ParseExt("nan"); class != FloatNaN {
		t.Fatalf("ParseExt(nan) class = %v", class)
	}
}
