package strategy

import "testing"

func TestTimeRange_WithinRange(t *testing.T) {
	s, err := NewTimeRange("col", 1, map[string]any{
		"start_time": "09:00:00",
		"end_time":   "17:00:00",
	})
	if err != nil {
		t.Fatal(err)
	}
	values, err := s.GenerateChunk(20)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range values {
		sec, err := parseTimeOfDaySeconds(v.(string), defaultTimeFormat)
		if err != nil {
			t.Fatalf("unparseable time: %v", v)
		}
		if sec < 9*3600 || sec > 17*3600 {
			t.Fatalf("time %v out of range", v)
		}
	}
}

func TestTimeRange_OvernightWrap(t *testing.T) {
	s, err := NewTimeRange("col", 1, map[string]any{
		"start_time": "22:00:00",
		"end_time":   "04:00:00",
	})
	if err != nil {
		t.Fatal(err)
	}
	values, err := s.GenerateChunk(30)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range values {
		sec, err := parseTimeOfDaySeconds(v.(string), defaultTimeFormat)
		if err != nil {
			t.Fatalf("unparseable time: %v", v)
		}
		if !(sec >= 22*3600 || sec <= 4*3600) {
			t.Fatalf("time %v not in overnight window", v)
		}
	}
}

func TestTimeRange_ChunkEquivalence(t *testing.T) {
	assertChunkEquivalence(t, "TimeRange", func() Strategy {
		s, _ := NewTimeRange("col", 5, map[string]any{
			"start_time": "00:00:00",
			"end_time":   "23:59:59",
		})
		return s
	}, 24, []int{8, 8, 8})
}
