package errs

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		errMsg   string
		wantCode string
		wantSev  Severity
		wantCat  Category
	}{
		{
			name:     "weight sum failure",
			errMsg:   "distributed_choice weights sum to 97, expected 100",
			wantCode: "CFG_WEIGHT_SUM",
			wantSev:  Error,
			wantCat:  Config,
		},
		{
			name:     "forward reference",
			errMsg:   "column total_price references column quantity which is not yet defined",
			wantCode: "CFG_FORWARD_REF",
			wantSev:  Error,
			wantCat:  Config,
		},
		{
			name:     "simultaneous stream and batch",
			errMsg:   "configuration specifies both stream and batch running modes",
			wantCode: "CFG_MODE_CONFLICT",
			wantSev:  Critical,
			wantCat:  Config,
		},
		{
			name:     "unreachable queue host",
			errMsg:   "dial tcp 10.0.0.1:5672: connection refused",
			wantCode: "NET_UNREACHABLE",
			wantSev:  Error,
			wantCat:  Network,
		},
		{
			name:     "unrecognized message",
			errMsg:   "something unexpected happened",
			wantCode: "UNCLASSIFIED",
			wantSev:  Error,
			wantCat:  Processing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(errors.New(tt.errMsg), Context{})
			if got.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Severity != tt.wantSev {
				t.Errorf("Severity = %q, want %q", got.Severity, tt.wantSev)
			}
			if got.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCat)
			}
		})
	}
}

func TestClassify_NilError(t *testing.T) {
	if got := Classify(nil, Context{}); got != nil {
		t.Errorf("Classify(nil) = %v, want nil", got)
	}
}
