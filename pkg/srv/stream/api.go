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
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"jinr.ru/greenlab/go-tof/pkg/config"
	"jinr.ru/greenlab/go-tof/pkg/log"
	"jinr.ru/greenlab/go-tof/pkg/ply"
)

// FileEntry describes one data file. The header fields are filled from the
// catalog when the file was loaded at least once.
type FileEntry struct {
	Name      string `json:"name"`
	NumPoints int    `json:"num_points,omitempty"`
	NumFaces  int    `json:"num_faces,omitempty"`
	HasColor  bool   `json:"has_color,omitempty"`
	Format    string `json:"format,omitempty"`
}

// RecordSetup ...
type RecordSetup struct {
	Path string `json:"path"`
}

// RawStreamSetup describes a raw byte-chunk stream over an arbitrary file.
type RawStreamSetup struct {
	Path       string `json:"path"`
	ChunkSize  int    `json:"chunk_size"`
	IntervalMs int    `json:"interval_ms"`
}

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	ctrl *Controller
}

func NewApiServer(ctx context.Context, cfg *config.Config, ctrl *Controller) *ApiServer {
	log.Info("Initializing API server with address: %s port: %d", cfg.Address, cfg.ApiPort)
	return &ApiServer{
		Context: ctx,
		Config:  cfg,
		ctrl:    ctrl,
	}
}

// Run starts the API server.
func (s *ApiServer) Run() error {
	log.Info("Starting API server: address: %s port: %d", s.Config.Address, s.Config.ApiPort)
	s.configureRouter()
	httpServer := &http.Server{
		Handler: handlers.LoggingHandler(os.Stderr, s.Router),
		Addr:    s.Config.ApiAddress(),
	}
	return httpServer.ListenAndServe()
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/files", s.handleFiles()).Methods("GET")
	subRouter.HandleFunc("/load/{file}", s.handleLoad()).Methods("POST")
	subRouter.HandleFunc("/connect", s.handleConnect()).Methods("GET")
	subRouter.HandleFunc("/disconnect", s.handleDisconnect()).Methods("GET")
	subRouter.HandleFunc("/stream/{action:start|stop}", s.handleStreamAction()).Methods("GET")
	subRouter.HandleFunc("/stream/file", s.handleStreamFile()).Methods("POST")
	subRouter.HandleFunc("/status", s.handleStatus()).Methods("GET")
	subRouter.HandleFunc("/record", s.handleRecord()).Methods("POST")
	subRouter.HandleFunc("/flush", s.handleFlush()).Methods("GET")
}

func statusCode(err error) int {
	switch err.(type) {
	case ErrBusy, ErrNotLoaded, ErrNotConnected:
		return http.StatusConflict
	case ply.ErrBadMagic:
		return http.StatusBadRequest
	default:
		if os.IsNotExist(err) {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	}
}

func (s *ApiServer) handleFiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Handling files request")
		names, err := s.ctrl.Files()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		entries := make([]FileEntry, 0, len(names))
		for _, name := range names {
			entry := FileEntry{Name: name}
			if catalog := s.ctrl.Catalog(); catalog != nil {
				if info, err := catalog.GetInfo(name); err == nil && info != nil {
					entry.NumPoints = info.NumPoints
					entry.NumFaces = info.NumFaces
					entry.HasColor = info.HasColor
					entry.Format = info.Format
				}
			}
			entries = append(entries, entry)
		}
		json.NewEncoder(w).Encode(entries)
	}
}

func (s *ApiServer) handleLoad() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		log.Debug("Handling load request: file: %s", vars["file"])

		maxPoints := 0
		if v := r.URL.Query().Get("max_points"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			maxPoints = n
		}

		info, err := s.ctrl.Load(vars["file"], maxPoints)
		if err != nil {
			http.Error(w, err.Error(), statusCode(err))
			return
		}
		json.NewEncoder(w).Encode(info)
	}
}

func (s *ApiServer) handleConnect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Handling connect request")
		if err := s.ctrl.Connect(); err != nil {
			http.Error(w, err.Error(), statusCode(err))
			return
		}
		json.NewEncoder(w).Encode(s.ctrl.Status())
	}
}

func (s *ApiServer) handleDisconnect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Handling disconnect request")
		s.ctrl.Disconnect()
		json.NewEncoder(w).Encode(s.ctrl.Status())
	}
}

func (s *ApiServer) handleStreamAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		log.Debug("Handling stream action request: action: %s", vars["action"])
		switch vars["action"] {
		case "start":
			packetSize := s.Config.PacketSize
			intervalMs := s.Config.IntervalMs
			query := r.URL.Query()
			if v := query.Get("packet_size"); v != "" {
				n, err := strconv.Atoi(v)
				if err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				packetSize = n
			}
			if v := query.Get("interval_ms"); v != "" {
				n, err := strconv.Atoi(v)
				if err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				intervalMs = n
			}
			interval := time.Duration(intervalMs) * time.Millisecond
			if err := s.ctrl.Start(packetSize, interval, nil); err != nil {
				http.Error(w, err.Error(), statusCode(err))
				return
			}
		case "stop":
			s.ctrl.Stop()
		default:
			err := ErrUnknownAction{What: vars["action"]}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(s.ctrl.Status())
	}
}

func (s *ApiServer) handleStreamFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setup := &RawStreamSetup{}
		if err := json.NewDecoder(r.Body).Decode(setup); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Debug("Handling raw stream request: path: %s chunk size: %d", setup.Path, setup.ChunkSize)
		interval := time.Duration(setup.IntervalMs) * time.Millisecond
		if err := s.ctrl.StartFile(setup.Path, setup.ChunkSize, interval, nil); err != nil {
			http.Error(w, err.Error(), statusCode(err))
			return
		}
		json.NewEncoder(w).Encode(s.ctrl.Status())
	}
}

func (s *ApiServer) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(s.ctrl.Status())
	}
}

func (s *ApiServer) handleRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setup := &RecordSetup{}
		if err := json.NewDecoder(r.Body).Decode(setup); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Debug("Handling record request: path: %s", setup.Path)
		if err := s.ctrl.Record(setup.Path); err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
	}
}

func (s *ApiServer) handleFlush() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Handling flush request")
		s.ctrl.Flush()
	}
}
