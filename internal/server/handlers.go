package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mj1618/axcore/internal/ax"
	"github.com/mj1618/axcore/internal/model"
	"github.com/mj1618/axcore/internal/output"
	"github.com/mj1618/axcore/internal/platform"
)

// withElement resolves the tool's target under the client mutex and hands
// it to fn, which renders the result text. The element is closed after fn
// returns.
func (s *Server) withElement(request mcp.CallToolRequest, fn func(el *ax.Element, params map[string]interface{}) (string, error)) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	target, err := targetParam(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target.Timeout = s.timeout

	s.clientMu.Lock()
	defer s.clientMu.Unlock()

	el, err := target.Resolve(s.client)
	if err != nil {
		s.logger.Debug("resolve failed", "tool", request.Params.Name, "target", target.String(), "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer el.Close()

	text, err := fn(el, params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// invalidate drops cached trees that a write to el may have changed.
func (s *Server) invalidate(el *ax.Element) {
	pid, err := el.PID()
	if err != nil || pid == 0 {
		s.cache.InvalidateAll()
		return
	}
	s.cache.InvalidatePID(pid)
}

func (s *Server) handleAttributes(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withElement(request, func(el *ax.Element, params map[string]interface{}) (string, error) {
		var names []string
		var err error
		if boolParam(params, "param", false) {
			names, err = el.ParameterizedAttributes()
		} else {
			names, err = el.Attributes()
		}
		if err != nil {
			return "", err
		}
		return output.YAML(output.ListResult{Element: el.String(), Names: names})
	})
}

func (s *Server) handleAttribute(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withElement(request, func(el *ax.Element, params map[string]interface{}) (string, error) {
		name := stringParam(params, "name", "")
		if name == "" {
			return "", fmt.Errorf("name is required")
		}
		var v any
		var err error
		if _, ok := params["param"]; ok {
			param, perr := typedParam(params, "param", "param_type")
			if perr != nil {
				return "", perr
			}
			v, err = el.ParameterizedAttribute(name, param)
		} else {
			v, err = el.Attribute(name)
		}
		if err != nil {
			return "", err
		}
		defer ax.CloseValue(v)
		return output.YAML(output.ValueResult{Element: el.String(), Name: name, Value: v})
	})
}

func (s *Server) handleSetAttribute(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withElement(request, func(el *ax.Element, params map[string]interface{}) (string, error) {
		name := stringParam(params, "name", "")
		if name == "" {
			return "", fmt.Errorf("name is required")
		}
		if _, ok := params["value"]; !ok {
			return "", fmt.Errorf("value is required")
		}
		value, err := typedParam(params, "value", "type")
		if err != nil {
			return "", err
		}
		v, err := el.Set(name, value)
		if err != nil {
			return "", err
		}
		s.invalidate(el)
		return output.YAML(output.ValueResult{Element: el.String(), Name: name, Value: v})
	})
}

func (s *Server) handleActions(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withElement(request, func(el *ax.Element, _ map[string]interface{}) (string, error) {
		names, err := el.Actions()
		if err != nil {
			return "", err
		}
		return output.YAML(output.ListResult{Element: el.String(), Names: names})
	})
}

func (s *Server) handlePerform(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withElement(request, func(el *ax.Element, params map[string]interface{}) (string, error) {
		action := stringParam(params, "action", "")
		if action == "" {
			return "", fmt.Errorf("action is required")
		}
		ok, err := el.Perform(action)
		if err != nil {
			return "", err
		}
		s.invalidate(el)
		return output.YAML(map[string]any{"element": el.String(), "action": action, "performed": ok})
	})
}

func (s *Server) handleElementAt(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	if _, ok := floatParam(params, "x"); !ok {
		return mcp.NewToolResultError("x and y are required"), nil
	}
	return s.withElement(request, func(el *ax.Element, _ map[string]interface{}) (string, error) {
		info, err := model.Describe(el)
		if err != nil {
			return "", err
		}
		pid, err := el.PID()
		if err != nil {
			return "", err
		}
		return output.YAML(output.ElementResult{Handle: el.String(), PID: pid, Element: info})
	})
}

func (s *Server) handlePID(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.withElement(request, func(el *ax.Element, _ map[string]interface{}) (string, error) {
		pid, err := el.PID()
		if err != nil {
			return "", err
		}
		return output.YAML(output.ValueResult{Element: el.String(), Name: "pid", Value: pid})
	})
}

func (s *Server) handleTree(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	target, err := targetParam(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target.Timeout = s.timeout
	depth := intParam(params, "depth", 0)
	if depth < 0 {
		return mcp.NewToolResultError("depth must not be negative"), nil
	}

	s.clientMu.Lock()
	snap, err := s.cache.Snapshot(newCacheKey(target, depth), func() (treeSnapshot, error) {
		return readTree(s.client, target, depth)
	})
	s.clientMu.Unlock()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	elements := []model.Element{snap.Tree}
	if boolParam(params, "prune", false) {
		elements = model.PruneEmptyGroups(elements)
	}
	if roles := stringParam(params, "roles", ""); roles != "" {
		elements = model.FilterElements(elements, splitList(roles), nil)
	}
	if text := stringParam(params, "text", ""); text != "" {
		elements = model.FilterByText(elements, text)
	}

	var result any
	if boolParam(params, "flat", false) {
		result = output.TreeFlatResult{PID: snap.PID, Root: snap.Root, TS: time.Now().Unix(), Elements: model.Flatten(elements)}
	} else {
		result = output.TreeResult{PID: snap.PID, Root: snap.Root, TS: time.Now().Unix(), Elements: elements}
	}
	text, err := output.YAML(result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// readTree resolves target and walks it. The caller must hold the client
// mutex.
func readTree(c *ax.Client, target platform.Target, depth int) (treeSnapshot, error) {
	root, err := target.Resolve(c)
	if err != nil {
		return treeSnapshot{}, err
	}
	defer root.Close()
	tree, err := model.Snapshot(root, model.TreeOptions{Depth: depth})
	if err != nil {
		return treeSnapshot{}, err
	}
	pid, err := root.PID()
	if err != nil {
		return treeSnapshot{}, err
	}
	return treeSnapshot{Root: root.String(), PID: pid, Tree: tree}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
