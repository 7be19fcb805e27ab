package frontier_test

import (
	"testing"

	"github.com/CrazyVinc/web-scraper/internal/frontier"
)

func TestEnqueueDequeue(t *testing.T) {
	queue := frontier.NewFIFOQueue[frontier.WorkItem]()

	firstItem := frontier.NewWorkItem("https://ex.com/a", 1)
	secondItem := frontier.NewWorkItem("https://ex.com/b", 1)
	thirdItem := frontier.NewWorkItem("https://ex.com/a/c", 2)

	if size := queue.Size(); size != 0 {
		t.Errorf("should have zero size, got: %d", size)
	}

	queue.Enqueue(firstItem)
	queue.Enqueue(secondItem)
	queue.Enqueue(thirdItem)

	if size := queue.Size(); size != 3 {
		t.Errorf("should have size 3, got: %d", size)
	}

	for _, want := range []frontier.WorkItem{firstItem, secondItem, thirdItem} {
		output, ok := queue.Dequeue()
		if !ok {
			t.Fatal("should return ok")
		}
		if output != want {
			t.Errorf("should dequeue %v, got: %v", want, output)
		}
	}

	if size := queue.Size(); size != 0 {
		t.Errorf("should have zero size, got: %d", size)
	}

	if _, ok := queue.Dequeue(); ok {
		t.Error("should not return ok")
	}
}

func TestEnqueueAfterDrain(t *testing.T) {
	queue := frontier.NewFIFOQueue[string]()
	queue.Enqueue("first")
	queue.Dequeue()
	queue.Enqueue("second")

	output, ok := queue.Dequeue()
	if !ok || output != "second" {
		t.Errorf("should dequeue second, got: %q (ok=%v)", output, ok)
	}
}

func TestClear(t *testing.T) {
	queue := frontier.NewFIFOQueue[string]()
	queue.Enqueue("a")
	queue.Enqueue("b")

	if dropped := queue.Clear(); dropped != 2 {
		t.Errorf("should drop 2 items, got: %d", dropped)
	}
	if size := queue.Size(); size != 0 {
		t.Errorf("should have zero size, got: %d", size)
	}
}
