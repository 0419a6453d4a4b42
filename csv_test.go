package consortium

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriteAllocationsCSV(t *testing.T) {
	clients := []Client{
		NewClient(1, "Alice", EUR(1000), day("2024-01-01")),
		NewClient(2, "Bob, Jr.", EUR(2000), day("2024-01-01")),
		NewClient(3, "Carol", EUR(500), day("2024-06-01")),
	}
	rows := Allocate(clients, day("2024-01-31"), EUR(100))

	var buf bytes.Buffer
	if err := WriteAllocationsCSV(&buf, rows); err != nil {
		t.Fatalf("WriteAllocationsCSV() error = %v", err)
	}
	want := `date,id,name,invested,join_date,active,share,alloc_profit
2024-01-31,1,Alice,1000.00,2024-01-01,true,0.3333333333333333,33.33
2024-01-31,2,"Bob, Jr.",2000.00,2024-01-01,true,0.6666666666666667,66.67
2024-01-31,3,Carol,500.00,2024-06-01,false,0,0.00
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("WriteAllocationsCSV() mismatch (-want +got):\n%s", diff)
	}
}
