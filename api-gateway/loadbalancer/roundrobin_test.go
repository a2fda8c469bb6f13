package loadbalancer

import "testing"

func TestRoundRobin_Rotates(t *testing.T) {
	lb := NewRoundRobin([]string{"http://stock-1:8082", "http://stock-2:8082"})

	seen := map[string]int{}
	for i := 0; i < 4; i++ {
		seen[lb.Next()]++
	}
	if seen["http://stock-1:8082"] != 2 || seen["http://stock-2:8082"] != 2 {
		t.Errorf("Expected even rotation, got %v", seen)
	}
}

func TestRoundRobin_SkipsMarkedDownInstance(t *testing.T) {
	lb := NewRoundRobin([]string{"http://stock-1:8082", "http://stock-2:8082"})

	lb.MarkDown("http://stock-1:8082")

	for i := 0; i < 4; i++ {
		if got := lb.Next(); got != "http://stock-2:8082" {
			t.Fatalf("Expected the healthy instance, got %s", got)
		}
	}

	lb.MarkUp("http://stock-1:8082")
	seen := map[string]int{}
	for i := 0; i < 4; i++ {
		seen[lb.Next()]++
	}
	if len(seen) != 2 {
		t.Errorf("Expected both instances back in rotation, got %v", seen)
	}
}

func TestRoundRobin_AllDownStillServes(t *testing.T) {
	lb := NewRoundRobin([]string{"http://stock-1:8082", "http://stock-2:8082"})

	lb.MarkDown("http://stock-1:8082")
	lb.MarkDown("http://stock-2:8082")

	// A stale mark must never make the service unreachable
	if got := lb.Next(); got == "" {
		t.Fatal("Expected an instance even with every mark down")
	}
}

func TestRoundRobin_Stats(t *testing.T) {
	lb := NewRoundRobin([]string{"http://stock-1:8082", "http://stock-2:8082"})
	lb.MarkDown("http://stock-2:8082")

	stats := lb.GetStats()
	if stats["available"] != 1 {
		t.Errorf("Expected 1 available instance, got %v", stats["available"])
	}
	if stats["instance_count"] != 2 {
		t.Errorf("Expected 2 configured instances, got %v", stats["instance_count"])
	}
}
