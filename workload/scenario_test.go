package workload

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Scenario
		wantErr bool
	}{
		{name: "均衡场景", input: "balanced", want: Balanced},
		{name: "规模扫描", input: "scaling", want: Scaling},
		{name: "未知名称报错", input: "no-such", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// 固定操作量的场景必须忽略外部配置值。
func TestOpCount(t *testing.T) {
	if got := HeavyWork.OpCount(99999); got != 1000 {
		t.Errorf("HeavyWork.OpCount = %d, want fixed 1000", got)
	}
	if got := LowVolume.OpCount(99999); got != 100 {
		t.Errorf("LowVolume.OpCount = %d, want fixed 100", got)
	}
	if got := Balanced.OpCount(12345); got != 12345 {
		t.Errorf("Balanced.OpCount = %d, want configured 12345", got)
	}
}

func TestScenarioTable(t *testing.T) {
	if len(All()) != 7 {
		t.Fatalf("expected 7 scenarios, got %d", len(All()))
	}
	if len(Battery()) != 5 {
		t.Fatalf("expected 5 battery scenarios, got %d", len(Battery()))
	}
	for _, sc := range Battery() {
		p := sc.Policy()
		if p.Sequential || p.ScalingSweep {
			t.Errorf("battery scenario %s must be a concurrent single-point scenario", sc)
		}
	}
	if got := ReadHeavy.Policy().WriteRatio; got != 0.1 {
		t.Errorf("ReadHeavy write ratio = %v, want 0.1", got)
	}
	if got := WriteHeavy.Policy().WriteRatio; got != 0.9 {
		t.Errorf("WriteHeavy write ratio = %v, want 0.9", got)
	}
	if !SequentialOnly.Policy().Sequential {
		t.Error("SequentialOnly must be flagged sequential")
	}
	if !Scaling.Policy().ScalingSweep {
		t.Error("Scaling must be flagged as sweep")
	}
}
