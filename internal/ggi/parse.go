package ggi

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

var (
	statusCellRe = regexp.MustCompile(`^Batch \d+:\s+`)
)

// ParseSID extracts the session token from the submission response page.
// The token lives in a hidden form field named "sid".
func ParseSID(doc []byte) (string, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return "", errors.Wrapf(ErrMalformedResponse, "parsing submission response: %v", err)
	}

	var sid string
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "input" && attrVal(n, "name") == "sid" {
			sid = attrVal(n, "value")
			return false
		}
		return true
	})
	if sid == "" {
		return "", errors.Wrap(ErrMalformedResponse, "submission response carries no sid field")
	}
	return sid, nil
}

// ParseStatus interprets one refresh of the GGI status page.
//
// A cell reading "Batch <n>: <phase>" marks a job in progress; a bold
// "Service Name:" heading marks a finished job. A page with neither is a
// transient condition (service busy), not an error. A status cell naming
// a phase outside the fixed pipeline is a protocol violation.
func ParseStatus(doc []byte) (StatusSnapshot, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return StatusSnapshot{}, errors.Wrapf(ErrMalformedResponse, "parsing status page: %v", err)
	}

	statusCell := findStatusCell(root)
	if statusCell == nil {
		if hasCompletionMarker(root) {
			return StatusSnapshot{Finished: true}, nil
		}
		return StatusSnapshot{Busy: true}, nil
	}

	label := statusCellRe.ReplaceAllString(strings.TrimSpace(nodeText(statusCell)), "")
	stage, ok := StageFromLabel(label)
	if !ok {
		return StatusSnapshot{}, errors.Wrapf(ErrMalformedResponse, "unrecognized pipeline phase %q", label)
	}

	return StatusSnapshot{StageIndex: stage, Position: cellPosition(statusCell)}, nil
}

// cellPosition reads the queue position from the cell following the
// status cell in its row. The page does not always render a number
// there; anything non-numeric counts as position 0.
func cellPosition(statusCell *html.Node) int {
	row := ancestorElement(statusCell, "tr")
	if row == nil {
		return 0
	}
	var cells []*html.Node
	walk(row, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "td" {
			cells = append(cells, n)
		}
		return true
	})
	if len(cells) < 2 {
		return 0
	}
	pos, err := strconv.Atoi(strings.TrimSpace(nodeText(cells[1])))
	if err != nil {
		return 0
	}
	return pos
}

func findStatusCell(root *html.Node) *html.Node {
	var cell *html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "td" && statusCellRe.MatchString(strings.TrimSpace(nodeText(n))) {
			cell = n
			return false
		}
		return true
	})
	return cell
}

func hasCompletionMarker(root *html.Node) bool {
	found := false
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "b" && strings.HasPrefix(strings.TrimSpace(nodeText(n)), "Service Name:") {
			found = true
			return false
		}
		return true
	})
	return found
}

// walk visits nodes depth-first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

func ancestorElement(n *html.Node, name string) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == name {
			return p
		}
	}
	return nil
}
