package tilesheet

import (
	"context"
	"errors"
	"sync"

	"github.com/bodgit/tilesheet/upload"
)

const decodeWorkers = 4

type loadRequest struct {
	seq    uint64
	source upload.Source
}

type loadResult struct {
	seq   uint64
	image upload.Image
	err   error
}

func (e *Editor) submit(ctx context.Context, sources []upload.Source) (<-chan loadRequest, <-chan error) {
	out := make(chan loadRequest)
	errc := make(chan error, 1)

	// Sequence numbers are assigned up front so the order of the
	// sources decides which image wins, not the order decoding finishes
	requests := make([]loadRequest, len(sources))
	for i, s := range sources {
		e.requested++
		requests[i] = loadRequest{seq: e.requested, source: s}
	}

	go func() {
		defer close(out)
		defer close(errc)
		for _, r := range requests {
			select {
			case out <- r:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc
}

func decodeWorker(ctx context.Context, in <-chan loadRequest, out chan<- loadResult) {
	for r := range in {
		m, err := r.source.Load()
		select {
		case out <- loadResult{seq: r.seq, image: m, err: err}:
		case <-ctx.Done():
			return
		}
	}
}

// Load decodes each source and makes the newest successfully decoded one the
// current tile sheet. Sources are decoded concurrently but every result is
// applied on the calling goroutine. A result is only applied if no newer
// request has been applied already. Decode failures are logged and returned
// together; the previous tile sheet stays in place for each of them.
func (e *Editor) Load(ctx context.Context, sources ...upload.Source) error {
	if len(sources) == 0 {
		return nil
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	requests, errc := e.submit(ctx, sources)

	results := make(chan loadResult)
	var wg sync.WaitGroup
	wg.Add(decodeWorkers)
	for i := 0; i < decodeWorkers; i++ {
		go func() {
			defer wg.Done()
			decodeWorker(ctx, requests, results)
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var errs []error
	for r := range results {
		if r.err != nil {
			e.logger.Printf("Unable to load tile sheet: %s\n", r.err)
			errs = append(errs, r.err)
			continue
		}
		if r.seq <= e.applied {
			e.logger.Printf("Discarding \"%s\", a newer tile sheet is loaded\n", r.image.Name)
			continue
		}
		if err := e.SetImage(r.image); err != nil {
			errs = append(errs, err)
			continue
		}
		e.applied = r.seq
	}

	if err := waitForPipeline(errc); err != nil {
		return err
	}

	return errors.Join(errs...)
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}
