package strings

import (
	"strings"
	"testing"
)

func TestBytesToString(t *testing.T) {
	b := []byte("hello world")
	s := BytesToString(b)

	if s != "hello world" {
		t.Errorf("expected 'hello world', got '%s'", s)
	}

	empty := BytesToString([]byte{})
	if empty != "" {
		t.Errorf("expected empty string, got '%s'", empty)
	}
}

func TestStringToBytes(t *testing.T) {
	b := StringToBytes("hello world")
	if string(b) != "hello world" {
		t.Errorf("expected 'hello world', got '%s'", string(b))
	}

	if empty := StringToBytes(""); empty != nil {
		t.Errorf("expected nil slice, got %v", empty)
	}
}

func TestClone(t *testing.T) {
	buf := []byte("mutable")
	s := BytesToString(buf)
	c := Clone(s)

	buf[0] = 'X'
	if c != "mutable" {
		t.Errorf("expected clone to be independent, got '%s'", c)
	}
}

func TestBuilder(t *testing.T) {
	builder := NewBuilder(32)

	builder.WriteString("INSERT INTO")
	builder.WriteByte(' ')
	builder.WriteString("eve_agents")

	result := builder.String()
	if result != "INSERT INTO eve_agents" {
		t.Errorf("expected 'INSERT INTO eve_agents', got '%s'", result)
	}

	if builder.Len() != len(result) {
		t.Errorf("expected length %d, got %d", len(result), builder.Len())
	}
}

func TestBuilderGrow(t *testing.T) {
	builder := NewBuilder(2)
	initialCap := builder.Cap()

	builder.Grow(64)
	if builder.Cap() <= initialCap {
		t.Errorf("expected capacity to grow, initial: %d, after: %d", initialCap, builder.Cap())
	}
}

func TestBuilderReset(t *testing.T) {
	builder := NewBuilder(32)
	builder.WriteString("test")

	builder.Reset()
	if builder.Len() != 0 {
		t.Errorf("expected length 0 after reset, got %d", builder.Len())
	}
}

func TestPoolReuse(t *testing.T) {
	b := GetBuilder(Small)
	b.WriteString("leftover")
	PutBuilder(b, Small)

	b2 := GetBuilder(Small)
	if b2.Len() != 0 {
		t.Errorf("expected pooled builder to be reset, got length %d", b2.Len())
	}
	PutBuilder(b2, Small)
}

func TestSprintf(t *testing.T) {
	got := Sprintf("part %d of %d", 2, 3)
	if got != "part 2 of 3" {
		t.Errorf("expected 'part 2 of 3', got '%s'", got)
	}

	if got := Sprintf("no args"); got != "no args" {
		t.Errorf("expected passthrough, got '%s'", got)
	}
}

func TestJoinPooled(t *testing.T) {
	cols := []string{"agent_id", "corporation_id", "level"}
	got := JoinPooled(cols, ", ")
	want := strings.Join(cols, ", ")
	if got != want {
		t.Errorf("expected '%s', got '%s'", want, got)
	}

	if got := JoinPooled(nil, ","); got != "" {
		t.Errorf("expected empty join, got '%s'", got)
	}
	if got := JoinPooled([]string{"one"}, ","); got != "one" {
		t.Errorf("expected single element passthrough, got '%s'", got)
	}
}
