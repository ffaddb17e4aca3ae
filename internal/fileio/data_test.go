package fileio

import (
	"bytes"
	"reflect"
	"testing"
)

func TestReadDataUnlabeled(t *testing.T) {
	content := "3 2\n1 2\n3 4\n5 6\n"
	df, err := ReadData(bytes.NewBufferString(content))
	if err != nil {
		t.Fatalf("ReadData failed: %v", err)
	}
	if df.N != 3 || df.M != 2 {
		t.Fatalf("got N=%d M=%d, want 3 2", df.N, df.M)
	}
	if df.Labeled {
		t.Fatalf("expected unlabeled data")
	}
	want := [][]float64{{1, 2}, {3, 4}, {5, 6}}
	if !reflect.DeepEqual(df.Rows, want) {
		t.Fatalf("got rows %v, want %v", df.Rows, want)
	}
}

func TestReadDataLabeled(t *testing.T) {
	content := "2 2\n1 2 1\n3 4 2\n"
	df, err := ReadData(bytes.NewBufferString(content))
	if err != nil {
		t.Fatalf("ReadData failed: %v", err)
	}
	if !df.Labeled {
		t.Fatalf("expected labeled data")
	}
	if !reflect.DeepEqual(df.Labels, []int{1, 2}) {
		t.Fatalf("got labels %v, want [1 2]", df.Labels)
	}
}

func TestReadDataDimensionMismatch(t *testing.T) {
	content := "2 2\n1 2 3 4\n5 6\n"
	if _, err := ReadData(bytes.NewBufferString(content)); err == nil {
		t.Fatalf("expected an error for malformed row width")
	}
}

func TestWriteDataRoundTrip(t *testing.T) {
	df := &DataFile{N: 2, M: 2, Rows: [][]float64{{1, 2}, {3, 4}}, Labeled: true, Labels: []int{1, 2}}
	var buf bytes.Buffer
	if err := WriteData(&buf, df); err != nil {
		t.Fatalf("WriteData failed: %v", err)
	}
	got, err := ReadData(&buf)
	if err != nil {
		t.Fatalf("round-trip ReadData failed: %v", err)
	}
	if !reflect.DeepEqual(got.Rows, df.Rows) || !reflect.DeepEqual(got.Labels, df.Labels) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, df)
	}
}
