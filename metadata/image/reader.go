package image

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	"github.com/viant/publicizer/metadata"
	"gopkg.in/yaml.v3"
)

// Read decodes module image; any partial error is escalated to a single fatal error
func Read(data []byte) (*metadata.Module, error) {
	body, err := splitTrailer(data)
	if err != nil {
		return nil, err
	}
	doc := &document{}
	decoder := yaml.NewDecoder(bytes.NewReader(body))
	decoder.KnownFields(true)
	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	r := &reader{diagnostics: &Diagnostics{}, seen: map[string]bool{}}
	module := r.readModule(doc)
	if err := r.diagnostics.Fatal("reading of the module image failed with one or more errors"); err != nil {
		return nil, err
	}
	return module, nil
}

type reader struct {
	diagnostics *Diagnostics
	seen        map[string]bool
}

func (r *reader) readModule(doc *document) *metadata.Module {
	if doc.Format != Format {
		r.diagnostics.Registerf("unsupported format %q", doc.Format)
	}
	if doc.Version != FormatVersion {
		r.diagnostics.Registerf("unsupported format version %d", doc.Version)
	}
	if doc.Module.Name == "" {
		r.diagnostics.Registerf("module name was empty")
	}
	module := metadata.NewModule(doc.Module.Name)
	module.Assembly = doc.Module.Assembly
	module.Version = doc.Module.Version
	if doc.Module.CorLib != "" {
		module.CorLib = doc.Module.CorLib
	}
	mvid, err := uuid.Parse(doc.Module.Mvid)
	if err != nil {
		r.diagnostics.Registerf("invalid mvid %q: %w", doc.Module.Mvid, err)
	}
	module.Mvid = mvid

	for _, ref := range doc.References {
		if ref.Name == "" {
			r.diagnostics.Registerf("type reference in scope %q has no name", ref.Scope)
			continue
		}
		module.ImportType(ref.Scope, ref.Namespace, ref.Name)
	}
	for _, node := range doc.Types {
		t := &metadata.Type{Namespace: node.Namespace}
		module.AddType(r.readType(node, t))
	}
	return module
}

func (r *reader) readType(node *typeNode, t *metadata.Type) *metadata.Type {
	t.Name = node.Name
	t.Attributes = metadata.TypeAttributes(node.Attributes)
	t.BaseType = node.BaseType
	t.CustomAttributes = r.readAttributes(node.CustomAttributes)
	if node.Name == "" {
		r.diagnostics.Registerf("type in namespace %q has no name", node.Namespace)
	}
	fullName := t.FullName()
	if r.seen[fullName] {
		r.diagnostics.Registerf("duplicate type %v", fullName)
	}
	r.seen[fullName] = true

	if node.Fields != nil {
		t.Fields = make([]*metadata.Field, 0, len(*node.Fields))
		for _, field := range *node.Fields {
			t.AddField(&metadata.Field{
				Name:             field.Name,
				Attributes:       metadata.FieldAttributes(field.Attributes),
				Signature:        field.Signature,
				CustomAttributes: r.readAttributes(field.CustomAttributes),
			})
		}
	}
	methods := map[string]*metadata.Method{}
	if node.Methods != nil {
		t.Methods = make([]*metadata.Method, 0, len(*node.Methods))
		for _, item := range *node.Methods {
			method := &metadata.Method{
				Name:             item.Name,
				Attributes:       metadata.MethodAttributes(item.Attributes),
				Signature:        readSignature(item.Signature),
				Body:             readBody(item.Body),
				CustomAttributes: r.readAttributes(item.CustomAttributes),
			}
			if method.Signature == nil {
				r.diagnostics.Registerf("method %v::%v has no signature", fullName, item.Name)
			}
			t.AddMethod(method)
			methods[method.Identity()] = method
		}
	}
	for _, item := range node.Properties {
		property := &metadata.Property{Name: item.Name, Signature: item.Signature}
		property.GetMethod = r.accessor(methods, fullName, item.Get)
		property.SetMethod = r.accessor(methods, fullName, item.Set)
		t.AddProperty(property)
	}
	for _, item := range node.Events {
		t.AddEvent(&metadata.Event{Name: item.Name, EventType: item.EventType})
	}
	for _, item := range node.NestedTypes {
		nested := &metadata.Type{}
		t.AddNestedType(nested)
		r.readType(item, nested)
	}
	return t
}

func (r *reader) accessor(methods map[string]*metadata.Method, typeName, identity string) *metadata.Method {
	if identity == "" {
		return nil
	}
	method, ok := methods[identity]
	if !ok {
		r.diagnostics.Registerf("unresolved accessor %v in %v", identity, typeName)
	}
	return method
}

func (r *reader) readAttributes(nodes []*attributeNode) []*metadata.CustomAttribute {
	if len(nodes) == 0 {
		return nil
	}
	result := make([]*metadata.CustomAttribute, 0, len(nodes))
	for _, node := range nodes {
		if node.Constructor == nil {
			r.diagnostics.Registerf("custom attribute has no constructor")
			continue
		}
		attribute := &metadata.CustomAttribute{
			Constructor: &metadata.MemberRef{
				DeclaringType: node.Constructor.DeclaringType,
				Name:          node.Constructor.Name,
				Signature:     readSignature(node.Constructor.Signature),
			},
		}
		for _, arg := range node.Arguments {
			attribute.Arguments = append(attribute.Arguments, &metadata.Argument{Type: arg.Type, Value: arg.Value})
		}
		result = append(result, attribute)
	}
	return result
}

func readSignature(node *signatureNode) *metadata.MethodSignature {
	if node == nil {
		return nil
	}
	return &metadata.MethodSignature{
		HasThis:    node.HasThis,
		ReturnType: node.ReturnType,
		Parameters: node.Parameters,
	}
}

func readBody(nodes []*instructionNode) *metadata.MethodBody {
	if len(nodes) == 0 {
		return nil
	}
	body := &metadata.MethodBody{}
	for _, node := range nodes {
		body.Instructions = append(body.Instructions, &metadata.Instruction{OpCode: node.OpCode, Operand: node.Operand})
	}
	return body
}
