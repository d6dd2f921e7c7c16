// record captures a live websocket feed into a JSON-lines replay file that
// the viewer plays back with --replay.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/milk9111/tacmap/feed"
)

func main() {
	url := flag.String("feed", "ws://localhost:8800/feed", "websocket feed URL")
	out := flag.String("o", "match.jsonl", "output replay file")
	duration := flag.Duration("duration", 0, "stop after this long (0 = until interrupted)")
	flag.Parse()

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("record: create %s: %v", *out, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)

	src := feed.DialLive(*url)
	defer src.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	var deadline <-chan time.Time
	if *duration > 0 {
		deadline = time.After(*duration)
	}

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	lastTick := -1
	frames := 0
	log.Printf("record: recording %s to %s", *url, *out)

	for {
		select {
		case <-ticker.C:
			frame, ok := src.Poll()
			if !ok || frame.Tick == lastTick {
				continue
			}
			if err := enc.Encode(frame); err != nil {
				log.Fatalf("record: write frame: %v", err)
			}
			lastTick = frame.Tick
			frames++
		case <-interrupt:
			log.Printf("record: interrupted, wrote %d frames", frames)
			return
		case <-deadline:
			log.Printf("record: done, wrote %d frames", frames)
			return
		}
	}
}
