package grid

import "testing"

func TestReadWriteBounds(t *testing.T) {
	ctx := New(4, 4, 120, 4, nil, nil)
	ctx.Write(1, 1, 'A')
	if got := ctx.Read(1, 1); got != 'A' {
		t.Fatalf("Read(1,1) = %q, want 'A'", got)
	}
	if got := ctx.Read(-1, 0); got != Nul {
		t.Fatalf("out-of-range read = %q, want Nul", got)
	}
	ctx.Write(100, 100, 'X') // must not panic
}

func TestListenSubstitutesDefault(t *testing.T) {
	ctx := New(2, 2, 120, 4, nil, nil)
	p := ctx.Listen("a", 0, 0, '5')
	if p.Value != '5' {
		t.Fatalf("Listen default = %q, want '5'", p.Value)
	}
	ctx.Write(0, 0, '3')
	p = ctx.Listen("a", 0, 0, '5')
	if p.Value != '3' {
		t.Fatalf("Listen value = %q, want '3'", p.Value)
	}
}

func TestLockSetResetsEachTick(t *testing.T) {
	ctx := New(2, 2, 120, 4, nil, nil)
	ctx.LockNamed(0, 0, "a")
	if !ctx.IsLocked(0, 0) {
		t.Fatal("expected (0,0) locked")
	}
	ctx.UnlockAll()
	if ctx.IsLocked(0, 0) {
		t.Fatal("expected lock cleared after UnlockAll")
	}
}

func TestPortNameFirstWriterWins(t *testing.T) {
	ctx := New(2, 2, 120, 4, nil, nil)
	ctx.LockNamed(0, 0, "first")
	ctx.LockNamed(0, 0, "second")
	name, ok := ctx.PortName(0, 0)
	if !ok || name != "first" {
		t.Fatalf("PortName = %q, want %q (first writer wins)", name, "first")
	}
}

func TestTickMillisInvariant(t *testing.T) {
	ctx := New(2, 2, 120, 4, nil, nil)
	tm := ctx.TickMillis()
	if tm*ctx.Tempo*ctx.Divisions != 60000 {
		t.Fatalf("tick_time * tempo * divisions = %d, want 60000", tm*ctx.Tempo*ctx.Divisions)
	}
}

type fakePersistence struct {
	saved map[string][]string
}

func (f *fakePersistence) Save(name string, lines []string) error {
	if f.saved == nil {
		f.saved = make(map[string][]string)
	}
	cp := append([]string(nil), lines...)
	f.saved[name] = cp
	return nil
}

func (f *fakePersistence) Load(name string) ([]string, error) {
	return f.saved[name], nil
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p := &fakePersistence{}
	ctx := New(2, 3, 120, 4, p, nil)
	ctx.Write(0, 0, 'A')
	ctx.requestSave("buffer")
	ctx.FlushPersistence()

	ctx2 := New(2, 3, 120, 4, p, nil)
	ctx2.requestLoad("buffer")
	ctx2.FlushPersistence()

	if got := ctx2.Read(0, 0); got != 'A' {
		t.Fatalf("after load, Read(0,0) = %q, want 'A'", got)
	}
}
