package workflow

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// xmlWorkflow/xmlTransition/xmlAction mirror the XML surface format of
// spec.md §6:
//
//	<workflow name="..."><steps>
//	  <transition from="s" to="t">
//	    <action actor="a" method="m">
//	      <arguments><arg>x</arg><arg>y</arg></arguments>
//	    </action>
//	  </transition>
//	</steps></workflow>
type xmlWorkflow struct {
	XMLName     xml.Name        `xml:"workflow"`
	Name        string          `xml:"name,attr"`
	Description string          `xml:"description,attr"`
	Steps       xmlSteps        `xml:"steps"`
}

type xmlSteps struct {
	Transitions []xmlTransition `xml:"transition"`
}

type xmlTransition struct {
	From    string      `xml:"from,attr"`
	To      string      `xml:"to,attr"`
	Label   string      `xml:"label,attr"`
	Note    string      `xml:"note,attr"`
	Actions []xmlAction `xml:"action"`
}

type xmlAction struct {
	Actor     string       `xml:"actor,attr"`
	Method    string       `xml:"method,attr"`
	Execution string       `xml:"execution,attr"`
	Arguments xmlArguments `xml:"arguments"`
}

type xmlArguments struct {
	Args []string `xml:"arg"`
	Text string   `xml:",chardata"`
}

// asAny normalizes XML arguments per spec.md §4.2's XML rows: a bare
// <arguments>text</arguments> becomes the string "text" (which
// SerializeArguments then wraps as ["text"]); nested <arg> elements become
// a []string, already in the ["a","b"] shape.
func (a xmlArguments) asAny() any {
	if len(a.Args) > 0 {
		return a.Args
	}
	if text := strings.TrimSpace(a.Text); text != "" {
		return text
	}
	return nil
}

// ParseXML decodes an XML workflow document from r.
func ParseXML(r io.Reader) (*Workflow, error) {
	var raw xmlWorkflow
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding xml workflow: %w", err)
	}
	wf := &Workflow{Name: raw.Name, Description: raw.Description}
	wf.Transitions = make([]Transition, len(raw.Steps.Transitions))
	for i, xt := range raw.Steps.Transitions {
		t := Transition{
			Label:  xt.Label,
			Note:   xt.Note,
			States: [2]string{xt.From, xt.To},
		}
		t.Actions = make([]Action, len(xt.Actions))
		for j, xa := range xt.Actions {
			t.Actions[j] = Action{
				Actor:     xa.Actor,
				Method:    xa.Method,
				Arguments: xa.Arguments.asAny(),
				Execution: xa.Execution,
			}
		}
		wf.Transitions[i] = t
	}
	return wf, nil
}
