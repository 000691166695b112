package image

import (
	"bytes"
	"fmt"

	"github.com/viant/publicizer/metadata"
	"gopkg.in/yaml.v3"
)

// Write encodes module image; construction errors are escalated before any bytes are produced
func Write(module *metadata.Module) ([]byte, error) {
	w := &writer{diagnostics: &Diagnostics{}, seen: map[string]bool{}}
	doc := w.writeModule(module)
	if err := w.diagnostics.Fatal("construction of the module image failed with one or more errors"); err != nil {
		return nil, err
	}
	buffer := &bytes.Buffer{}
	encoder := yaml.NewEncoder(buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return appendTrailer(buffer.Bytes())
}

type writer struct {
	diagnostics *Diagnostics
	seen        map[string]bool
}

func (w *writer) writeModule(module *metadata.Module) *document {
	if module == nil {
		w.diagnostics.Registerf("module was nil")
		return nil
	}
	if module.Name == "" {
		w.diagnostics.Registerf("module name was empty")
	}
	doc := &document{
		Format:  Format,
		Version: FormatVersion,
		Module: moduleNode{
			Name:     module.Name,
			Assembly: module.Assembly,
			Version:  module.Version,
			Mvid:     module.Mvid.String(),
			CorLib:   module.CorLib,
		},
	}
	for _, ref := range module.References {
		doc.References = append(doc.References, &refNode{Scope: ref.Scope, Namespace: ref.Namespace, Name: ref.Name})
	}
	for _, t := range module.Types {
		doc.Types = append(doc.Types, w.writeType(t))
	}
	return doc
}

func (w *writer) writeType(t *metadata.Type) *typeNode {
	fullName := t.FullName()
	if t.Name == "" {
		w.diagnostics.Registerf("type in namespace %q has no name", t.Namespace)
	}
	if w.seen[fullName] {
		w.diagnostics.Registerf("duplicate type %v", fullName)
	}
	w.seen[fullName] = true

	node := &typeNode{
		Namespace:        t.Namespace,
		Name:             t.Name,
		Attributes:       uint32(t.Attributes),
		BaseType:         t.BaseType,
		CustomAttributes: w.writeAttributes(fullName, t.CustomAttributes),
	}
	if t.Fields != nil {
		fields := make([]*fieldNode, 0, len(t.Fields))
		for _, field := range t.Fields {
			fields = append(fields, &fieldNode{
				Name:             field.Name,
				Attributes:       uint16(field.Attributes),
				Signature:        field.Signature,
				CustomAttributes: w.writeAttributes(fullName+"::"+field.Name, field.CustomAttributes),
			})
		}
		node.Fields = &fields
	}
	if t.Methods != nil {
		methods := make([]*methodNode, 0, len(t.Methods))
		for _, method := range t.Methods {
			if method.Signature == nil {
				w.diagnostics.Registerf("method %v::%v has no signature", fullName, method.Name)
			}
			methods = append(methods, &methodNode{
				Name:             method.Name,
				Attributes:       uint16(method.Attributes),
				Signature:        writeSignature(method.Signature),
				Body:             writeBody(method.Body),
				CustomAttributes: w.writeAttributes(fullName+"::"+method.Name, method.CustomAttributes),
			})
		}
		node.Methods = &methods
	}
	for _, property := range t.Properties {
		node.Properties = append(node.Properties, &propertyNode{
			Name:      property.Name,
			Signature: property.Signature,
			Get:       w.accessor(t, property, property.GetMethod),
			Set:       w.accessor(t, property, property.SetMethod),
		})
	}
	for _, event := range t.Events {
		node.Events = append(node.Events, &eventNode{Name: event.Name, EventType: event.EventType})
	}
	for _, nested := range t.NestedTypes {
		if nested.DeclaringType != t {
			w.diagnostics.Registerf("nested type %v is not declared by %v", nested.Name, fullName)
		}
		node.NestedTypes = append(node.NestedTypes, w.writeType(nested))
	}
	return node
}

func (w *writer) accessor(t *metadata.Type, property *metadata.Property, method *metadata.Method) string {
	if method == nil {
		return ""
	}
	if method.DeclaringType != t {
		w.diagnostics.Registerf("accessor %v of property %v is not declared by %v", method.Name, property.Name, t.FullName())
	}
	return method.Identity()
}

func (w *writer) writeAttributes(owner string, attributes []*metadata.CustomAttribute) []*attributeNode {
	if len(attributes) == 0 {
		return nil
	}
	result := make([]*attributeNode, 0, len(attributes))
	for _, attribute := range attributes {
		if attribute.Constructor == nil {
			w.diagnostics.Registerf("custom attribute on %v has no constructor", owner)
			continue
		}
		node := &attributeNode{
			Constructor: &memberRefNode{
				DeclaringType: attribute.Constructor.DeclaringType,
				Name:          attribute.Constructor.Name,
				Signature:     writeSignature(attribute.Constructor.Signature),
			},
		}
		for _, arg := range attribute.Arguments {
			if arg.Type == "" {
				w.diagnostics.Registerf("custom attribute %v on %v has untyped argument", attribute.AttributeType(), owner)
			}
			node.Arguments = append(node.Arguments, &argumentNode{Type: arg.Type, Value: arg.Value})
		}
		result = append(result, node)
	}
	return result
}

func writeSignature(signature *metadata.MethodSignature) *signatureNode {
	if signature == nil {
		return nil
	}
	return &signatureNode{
		HasThis:    signature.HasThis,
		ReturnType: signature.ReturnType,
		Parameters: signature.Parameters,
	}
}

func writeBody(body *metadata.MethodBody) []*instructionNode {
	if body == nil {
		return nil
	}
	result := make([]*instructionNode, 0, len(body.Instructions))
	for _, instruction := range body.Instructions {
		result = append(result, &instructionNode{OpCode: instruction.OpCode, Operand: instruction.Operand})
	}
	return result
}
