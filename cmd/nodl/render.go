package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/andaru/nodl/qos"
	"github.com/andaru/nodl/types"
	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

func render(w io.Writer, format string, nodes []types.Node) error {
	if nodes == nil {
		nodes = []types.Node{}
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.WithStack(enc.Encode(nodes))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(nodes); err != nil {
			return errors.WithStack(err)
		}
		return errors.WithStack(enc.Close())
	case "table":
		renderTable(w, nodes)
	default:
		renderList(w, nodes)
	}
	return nil
}

func renderTable(w io.Writer, nodes []types.Node) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Node", "Executable", "Kind", "Name", "Type", "Roles", "QoS"})
	for _, n := range nodes {
		for _, i := range n.Interfaces() {
			tw.AppendRow(table.Row{n.Name, n.Executable, i.Kind(), i.InterfaceName(), i.InterfaceType(), roles(i), qosSummary(i)})
		}
		if len(n.Interfaces()) == 0 {
			tw.AppendRow(table.Row{n.Name, n.Executable})
		}
	}
	tw.Render()
}

func renderList(w io.Writer, nodes []types.Node) {
	lw := list.NewWriter()
	lw.SetOutputMirror(w)
	lw.SetStyle(list.StyleConnectedRounded)
	for _, n := range nodes {
		lw.AppendItem(fmt.Sprintf("%s (executable %s)", n.Name, n.Executable))
		lw.Indent()
		for _, i := range n.Interfaces() {
			item := fmt.Sprintf("%s %s [%s]", i.Kind(), i.InterfaceName(), i.InterfaceType())
			if r := roles(i); r != "" {
				item += " " + r
			}
			if q := qosSummary(i); q != "" {
				item += " qos(" + q + ")"
			}
			lw.AppendItem(item)
		}
		lw.UnIndent()
	}
	lw.Render()
}

func roles(i types.Interface) string {
	var out []string
	add := func(set bool, name string) {
		if set {
			out = append(out, name)
		}
	}
	switch v := i.(type) {
	case types.Action:
		add(v.Server, "server")
		add(v.Client, "client")
	case types.Service:
		add(v.Server, "server")
		add(v.Client, "client")
	case types.Topic:
		add(v.Publisher, "publisher")
		add(v.Subscription, "subscription")
	}
	return strings.Join(out, ",")
}

func qosSummary(i types.Interface) string {
	var p qos.Profile
	switch v := i.(type) {
	case types.Action:
		p = v.QoS
	case types.Service:
		p = v.QoS
	case types.Topic:
		p = v.QoS
	default:
		return ""
	}
	s := fmt.Sprintf("%s/%d %s %s", p.History, p.Depth, p.Reliability, p.Durability)
	if p.Liveliness != qos.LivelinessSystemDefault {
		s += " " + p.Liveliness.String()
	}
	return s
}
