/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package stream

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"jinr.ru/greenlab/go-tof/pkg/config"
	"jinr.ru/greenlab/go-tof/pkg/log"
	"jinr.ru/greenlab/go-tof/pkg/ply"
)

// Session is the state of the simulated hardware link. Loaded data is owned
// by the session; packets only copy slices out of it.
type Session struct {
	Connected bool
	Streaming bool
	File      string
	Cloud     *ply.PointCloud
	Info      *ply.Info
}

// Status is the session snapshot reported to API consumers.
type Status struct {
	Connected bool   `json:"connected"`
	Streaming bool   `json:"streaming"`
	File      string `json:"file,omitempty"`
	Points    int    `json:"points"`
	Progress  int    `json:"progress"`
}

// Controller owns the session state machine and drives packet sources at a
// configured cadence. At most one streaming loop runs at a time; starting a
// new one first stops and joins the previous one.
type Controller struct {
	cfg     *config.Config
	catalog *Catalog
	emitter *Emitter

	mu       sync.Mutex
	session  Session
	progress int
	recorder *Recorder
	stop     chan struct{}
	done     chan struct{}
	stopped  bool
}

func NewController(cfg *config.Config) (*Controller, error) {
	c := &Controller{cfg: cfg}

	if cfg.DBPath != "" {
		catalog, err := NewCatalog(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		c.catalog = catalog
	}

	if cfg.Emitter != nil {
		emitter, err := NewEmitter(cfg.Emitter.Address, cfg.Emitter.Port)
		if err != nil {
			c.closeCatalog()
			return nil, err
		}
		c.emitter = emitter
	}

	return c, nil
}

// Files lists the data files in the configured directory matching the
// configured pattern, by base name, sorted.
func (c *Controller) Files() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(c.cfg.DataDir, c.cfg.FilePattern))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	sort.Strings(names)
	return names, nil
}

// Load reads a data file into the session. maxPoints bounds the read for
// preview loads, zero means the whole file. Rejected while streaming.
func (c *Controller) Load(name string, maxPoints int) (*ply.Info, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Streaming {
		return nil, ErrBusy{What: "can not load a file"}
	}

	path := filepath.Join(c.cfg.DataDir, name)
	cloud, info, err := ply.ReadFile(path, maxPoints)
	if err != nil {
		return nil, err
	}

	c.session.File = name
	c.session.Cloud = cloud
	c.session.Info = info
	c.progress = 0

	if c.catalog != nil {
		if err := c.catalog.SetInfo(name, info); err != nil {
			log.Warning("Error while updating file catalog for %s: %s", name, err)
		}
	}

	log.Info("Loaded file: %s points: %d has_color: %v format: %s",
		name, cloud.Len(), info.HasColor, info.Format)
	return info, nil
}

// Connect performs the no-op hardware handshake. Requires a loaded file.
// The configured delay emulates the acknowledgement round trip, zero by
// default.
func (c *Controller) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Cloud == nil {
		return ErrNotLoaded{}
	}
	if c.cfg.ConnectDelayMs > 0 {
		time.Sleep(time.Duration(c.cfg.ConnectDelayMs) * time.Millisecond)
	}
	c.session.Connected = true
	log.Info("Hardware connected, data source: %s", c.session.File)
	return nil
}

// Disconnect force-stops any in-flight stream and resets the whole session.
func (c *Controller) Disconnect() {
	c.halt()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = Session{}
	c.progress = 0
	log.Info("Hardware disconnected")
}

// Start begins producing packets from the loaded point cloud at the given
// pacing interval. The interval is a delay between emissions, not a
// deadline; no skew compensation is done. A previous loop is stopped and
// joined first.
func (c *Controller) Start(packetSize int, interval time.Duration, consumer Consumer) error {
	c.mu.Lock()
	if !c.session.Connected {
		c.mu.Unlock()
		return ErrNotConnected{}
	}
	c.mu.Unlock()

	c.halt()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.session.Connected {
		// disconnect won the race while the previous loop was joining
		return ErrNotConnected{}
	}
	if c.session.Streaming {
		return ErrBusy{What: "another stream was started concurrently"}
	}

	if packetSize < 1 {
		packetSize = c.cfg.PacketSize
	}
	src := NewPointSource(c.session.Cloud, packetSize)
	c.launch(src, interval, consumer)
	log.Info("Stream started: file: %s packet size: %d interval: %s",
		c.session.File, packetSize, interval)
	return nil
}

// StartFile streams raw byte chunks of an arbitrary file. No point
// interpretation is done and no connect handshake is needed, but an active
// stream still blocks it.
func (c *Controller) StartFile(path string, chunkSize int, interval time.Duration, consumer Consumer) error {
	c.halt()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.Streaming {
		return ErrBusy{What: "another stream was started concurrently"}
	}

	src, err := NewByteSource(path, chunkSize)
	if err != nil {
		return err
	}
	c.launch(src, interval, consumer)
	log.Info("Raw stream started: file: %s chunk size: %d interval: %s",
		path, chunkSize, interval)
	return nil
}

// launch is called with the mutex held and the previous loop joined.
func (c *Controller) launch(src Source, interval time.Duration, consumer Consumer) {
	if consumer == nil {
		consumer = LogConsumer{}
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	c.stopped = false
	c.session.Streaming = true
	go c.run(src, interval, consumer, c.stop, c.done)
}

// Stop halts the stream between packet emissions. A stop requested during
// the pacing delay takes effect at once; a stop with no stream running is a
// no-op. Stop returns after the streaming goroutine has exited.
func (c *Controller) Stop() {
	c.halt()
}

func (c *Controller) halt() {
	c.mu.Lock()
	done := c.done
	if c.session.Streaming && !c.stopped {
		c.stopped = true
		close(c.stop)
	}
	c.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (c *Controller) run(src Source, interval time.Duration, consumer Consumer, stop, done chan struct{}) {
	defer func() {
		if closer, ok := src.(io.Closer); ok {
			closer.Close()
		}
		c.mu.Lock()
		c.session.Streaming = false
		c.mu.Unlock()
		close(done)
	}()

	count := 0
	for {
		select {
		case <-stop:
			consumer.OnStatus(fmt.Sprintf("stream stopped after %d packets", count))
			return
		default:
		}

		p, err := src.Next()
		if err == io.EOF {
			consumer.OnStatus(fmt.Sprintf("stream complete: %d packets", count))
			return
		}
		if err != nil {
			consumer.OnStatus(fmt.Sprintf("stream error: %s", err))
			return
		}
		count++

		c.mu.Lock()
		c.progress = int(p.Progress)
		recorder := c.recorder
		c.mu.Unlock()

		if recorder != nil {
			if _, err := recorder.Write(p.RawBytes); err != nil {
				log.Error("Error while recording packet #%d: %s", p.Seq, err)
			}
		}
		if c.emitter != nil {
			c.emitter.Emit(p.RawBytes)
		}

		consumer.OnPacket(p)
		consumer.OnProgress(int(p.Progress))

		if interval > 0 {
			t := time.NewTimer(interval)
			select {
			case <-stop:
				t.Stop()
				consumer.OnStatus(fmt.Sprintf("stream stopped after %d packets", count))
				return
			case <-t.C:
			}
		}
	}
}

// Record starts appending the raw wire bytes of every emitted packet to a
// file. An already open recorder is flushed first.
func (c *Controller) Record(path string) error {
	recorder, err := NewRecorder(path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recorder != nil {
		c.recorder.Flush()
	}
	c.recorder = recorder
	return nil
}

// Flush closes the recorder if one is open.
func (c *Controller) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recorder != nil {
		c.recorder.Flush()
		c.recorder = nil
	}
}

// Catalog exposes the file metadata catalog, nil when no DB is configured.
func (c *Controller) Catalog() *Catalog {
	return c.catalog
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{
		Connected: c.session.Connected,
		Streaming: c.session.Streaming,
		File:      c.session.File,
		Progress:  c.progress,
	}
	if c.session.Cloud != nil {
		st.Points = c.session.Cloud.Len()
	}
	return st
}

// Close stops streaming and releases the catalog, emitter and recorder.
func (c *Controller) Close() {
	c.halt()
	c.Flush()
	if c.emitter != nil {
		c.emitter.Close()
	}
	c.closeCatalog()
}

func (c *Controller) closeCatalog() {
	if c.catalog != nil {
		c.catalog.Close()
	}
}
