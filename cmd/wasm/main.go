//go:build js && wasm
// +build js,wasm

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote/export"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/notation"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/render"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

// Error codes returned to JavaScript
const (
	ErrorNone = iota
	ErrorInvalidArgs
	ErrorInvalidScore
	ErrorUnknownFormat
	ErrorRenderFailed
)

// layoutScore returns the beam groups and slur pairs of every measure.
// Args: scoreJSON. Returns: {error: number, data: string}
func layoutScore(this js.Value, args []js.Value) interface{} {
	s, errResp, ok := scoreArg(args, 1)
	if !ok {
		return errResp
	}
	data, err := json.Marshal(notation.ScoreLayout(s))
	if err != nil {
		return makeErrorResponse(ErrorInvalidScore, err.Error())
	}
	return makeResponse(string(data))
}

// buildPayload returns the export payload the generation service expects.
// Args: scoreJSON, systemBreak, tempo. Returns: {error: number, data: string}
func buildPayload(this js.Value, args []js.Value) interface{} {
	s, errResp, ok := scoreArg(args, 3)
	if !ok {
		return errResp
	}
	if args[1].Type() != js.TypeNumber || args[2].Type() != js.TypeNumber {
		return makeErrorResponse(ErrorInvalidArgs, "systemBreak and tempo must be numbers")
	}
	p := payload(s, export.Options{SystemBreak: args[1].Int(), Tempo: args[2].Int()})
	data, err := json.Marshal(p)
	if err != nil {
		return makeErrorResponse(ErrorInvalidScore, err.Error())
	}
	return makeResponse(string(data))
}

// renderScore renders the score in the browser.
// Args: scoreJSON, format. Returns: {error: number, data: Uint8Array | string}
func renderScore(this js.Value, args []js.Value) interface{} {
	s, errResp, ok := scoreArg(args, 2)
	if !ok {
		return errResp
	}
	if args[1].Type() != js.TypeString {
		return makeErrorResponse(ErrorInvalidArgs, "format must be a string")
	}
	format, err := export.ParseFormat(args[1].String())
	if err != nil {
		return makeErrorResponse(ErrorUnknownFormat, err.Error())
	}

	data, err := render.Render(payload(s, export.DefaultOptions()), format)
	if err != nil {
		return makeErrorResponse(ErrorRenderFailed, fmt.Sprintf("Failed to render %s: %v", format, err))
	}

	arr := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(arr, data)
	return makeResponse(arr)
}

func scoreArg(args []js.Value, want int) (*score.Score, js.Value, bool) {
	if len(args) < want {
		return nil, makeErrorResponse(ErrorInvalidArgs, fmt.Sprintf("Expected %d arguments", want)), false
	}
	if args[0].Type() != js.TypeString {
		return nil, makeErrorResponse(ErrorInvalidArgs, "scoreJSON must be a string"), false
	}
	s, err := score.Decode(bytes.NewReader([]byte(args[0].String())), score.EncodingJSON)
	if err != nil {
		return nil, makeErrorResponse(ErrorInvalidScore, err.Error()), false
	}
	return s, js.Null(), true
}

func payload(s *score.Score, opts export.Options) export.Payload {
	d := s.WithDefaults(score.DefaultTitle, score.DefaultArtist)
	return export.Build(&d, opts)
}

func makeResponse(data interface{}) js.Value {
	result := js.Global().Get("Object").New()
	result.Set("error", ErrorNone)
	result.Set("data", data)
	return result
}

func makeErrorResponse(errorCode int, message string) js.Value {
	result := js.Global().Get("Object").New()
	result.Set("error", errorCode)
	result.Set("data", message)
	return result
}

func main() {
	console := js.Global().Get("console")
	if !console.IsUndefined() {
		console.Call("log", "SimpleNote WASM module initializing...")
	}

	done := make(chan struct{})

	js.Global().Set("simplenoteLayout", js.FuncOf(layoutScore))
	js.Global().Set("simplenotePayload", js.FuncOf(buildPayload))
	js.Global().Set("simplenoteRender", js.FuncOf(renderScore))

	window := js.Global().Get("window")
	if !window.IsUndefined() {
		eventInit := js.Global().Get("Object").New()
		event := js.Global().Get("CustomEvent").New("wasmReady", eventInit)
		window.Call("dispatchEvent", event)
	} else if !console.IsUndefined() {
		console.Call("error", "window object is undefined")
	}

	if !console.IsUndefined() {
		console.Call("log", "SimpleNote WASM module loaded and ready")
	}

	<-done
}
