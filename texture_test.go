package lime

import "testing"

type fakeImage struct {
	freed int
}

func (f *fakeImage) Deallocate() { f.freed++ }

func TestDeleteScheduledTexturesDrains(t *testing.T) {
	DeleteScheduledTextures()
	a, b := &fakeImage{}, &fakeImage{}
	scheduleDeletion(a)
	scheduleDeletion(b)

	if got := ScheduledTextureCount(); got != 2 {
		t.Fatalf("ScheduledTextureCount = %d, want 2", got)
	}
	if got := DeleteScheduledTextures(); got != 2 {
		t.Errorf("DeleteScheduledTextures = %d, want 2", got)
	}
	if a.freed != 1 || b.freed != 1 {
		t.Errorf("freed = %d, %d, want 1, 1", a.freed, b.freed)
	}
	if got := DeleteScheduledTextures(); got != 0 {
		t.Errorf("second drain = %d, want 0", got)
	}
}

func TestScheduleDeletionConcurrent(t *testing.T) {
	DeleteScheduledTextures()
	const n = 64
	done := make(chan struct{})
	for i := 0; i < n; i++ {
		go func() {
			scheduleDeletion(&fakeImage{})
			done <- struct{}{}
		}()
	}
	for i := 0; i < n; i++ {
		<-done
	}
	if got := DeleteScheduledTextures(); got != n {
		t.Errorf("DeleteScheduledTextures = %d, want %d", got, n)
	}
}

func TestTextureDisposeNilImageNoOp(t *testing.T) {
	DeleteScheduledTextures()
	tex := &Texture{}
	tex.Dispose()
	tex.Dispose()
	if got := ScheduledTextureCount(); got != 0 {
		t.Errorf("ScheduledTextureCount = %d, want 0", got)
	}
}
