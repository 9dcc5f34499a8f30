// Command riffserve is a small HTTP companion to riffwalk: POST a RIFF/WAV
// file and get its chunk tree back as JSON, exercising the navigator over
// an in-memory byte source.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ADM228/libriff-X/format/riff"
	"github.com/ADM228/libriff-X/pkg/navigator"
	"github.com/ADM228/libriff-X/pkg/riffopen"
)

type chunkNode struct {
	ID       string      `json:"id"`
	Size     uint64      `json:"size"`
	Offset   uint64      `json:"offset"`
	ListType string      `json:"listType,omitempty"`
	Children []chunkNode `json:"children,omitempty"`
}

type inspectResponse struct {
	Root chunkNode `json:"root"`
}

var logger *zap.Logger

func inspectHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, errors.New("only POST is supported"))
		return
	}

	buf, err := readUpload(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}

	h, err := riffopen.OpenMem(buf)
	if h == nil {
		if codeErr, ok := err.(riff.Code); ok {
			writeRiffErr(w, codeErr)
			return
		}
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	defer h.Free()
	h.SetLogger(logger)
	if err != nil {
		logger.Warn("non-fatal condition opening upload", zap.Error(err))
	}

	root := chunkNode{
		ID:       h.CurrentListID().String(),
		Size:     h.CurrentListSize(),
		Offset:   h.CurrentListStart(),
		ListType: h.CurrentListType().String(),
	}
	root.Children, err = inspectChildren(h)
	if err != nil {
		writeRiffErr(w, err)
		return
	}

	json.NewEncoder(w).Encode(inspectResponse{Root: root})
}

func inspectChildren(h *navigator.Handle) ([]chunkNode, error) {
	var out []chunkNode
	for {
		node := chunkNode{
			ID:     h.CurrentChunkID().String(),
			Size:   h.CurrentChunkSize(),
			Offset: h.CurrentChunkStart(),
		}

		if h.CanBeChunkList() {
			if serr := h.SeekLevelSub(); serr == nil {
				node.ListType = h.CurrentListType().String()
				children, cerr := inspectChildren(h)
				if cerr != nil {
					return out, cerr
				}
				node.Children = children
				if perr := h.SeekLevelParentStart(); perr != nil && perr != riff.EOCL {
					return out, perr
				}
			}
		}

		out = append(out, node)

		err := h.SeekNextChunk()
		if err != nil {
			if err == riff.EOCL || err == riff.EXDAT {
				return out, nil
			}
			return out, err
		}
	}
}

func readUpload(r *http.Request) ([]byte, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(64 << 20); err != nil {
			return nil, err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(file)
	}
	return io.ReadAll(r.Body)
}

func writeRiffErr(w http.ResponseWriter, err error) {
	code, ok := err.(riff.Code)
	status := http.StatusUnprocessableEntity
	if !ok {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": code.Error(),
		"code":  int(code),
	})
}

func writeErr(w http.ResponseWriter, status int, err error) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func main() {
	addr := flag.String("addr", ":8081", "listen address")
	verbose := flag.Bool("verbose", false, "log diagnostics for each inspected file")
	flag.Parse()

	if *verbose {
		logger = zap.Must(zap.NewDevelopment())
	} else {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	http.HandleFunc("/inspect", inspectHandler)
	srv := &http.Server{
		Addr:              *addr,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("riffserve listening", zap.String("addr", *addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}
