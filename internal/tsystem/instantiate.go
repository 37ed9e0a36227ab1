package tsystem

import "fmt"

// MakeArrayType interns the array-of-element type (spec §3.1 TypeKind
// variants), rank 1 meaning a single-dimensional zero-based array.
func (c *Context) MakeArrayType(element TypeID, rank int) TypeID {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := typeKey{kind: KindArray, element: element, rank: rank}
	elem := &c.types[element]
	return c.internType(TypeDesc{
		Kind:                     KindArray,
		ElementType:              element,
		ArrayRank:                rank,
		ContainsGCPointers:       true, // arrays are always heap objects
		ContainsGenericVariables: elem.ContainsGenericVariables,
	}, key)
}

// MakeByRefType interns "T&", used for ref/out parameters.
func (c *Context) MakeByRefType(element TypeID) TypeID {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := typeKey{kind: KindByRef, element: element}
	elem := &c.types[element]
	return c.internType(TypeDesc{
		Kind:                     KindByRef,
		ElementType:              element,
		ContainsGenericVariables: elem.ContainsGenericVariables,
	}, key)
}

// MakePointerType interns "T*".
func (c *Context) MakePointerType(element TypeID) TypeID {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := typeKey{kind: KindPointer, element: element}
	elem := &c.types[element]
	return c.internType(TypeDesc{
		Kind:                     KindPointer,
		ElementType:              element,
		ContainsGenericVariables: elem.ContainsGenericVariables,
	}, key)
}

// MakeFunctionPointerType interns a standalone function pointer type.
func (c *Context) MakeFunctionPointerType(params []TypeID, ret TypeID) TypeID {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := typeKey{kind: KindFunctionPointer, element: ret, args: joinIDs(params)}
	containsVars := c.types[ret].ContainsGenericVariables
	for _, p := range params {
		containsVars = containsVars || c.types[p].ContainsGenericVariables
	}
	return c.internType(TypeDesc{
		Kind:                     KindFunctionPointer,
		SigParams:                append([]TypeID(nil), params...),
		SigReturn:                ret,
		ContainsGenericVariables: containsVars,
	}, key)
}

// MakeGenericParameter interns the formal generic parameter at index,
// distinguishing type-level ("T" on a generic type) from method-level
// ("U" on a generic method) parameters (spec §3.1).
func (c *Context) MakeGenericParameter(index int, isMethodParam bool) TypeID {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := typeKey{kind: KindGenericParameter, paramIndex: index, isMethodParam: isMethodParam}
	return c.internType(TypeDesc{
		Kind:                     KindGenericParameter,
		ParamIndex:               index,
		IsMethodParam:            isMethodParam,
		ContainsGenericVariables: true,
	}, key)
}

// MakeInstantiatedType interns Foo<arg0, arg1, ...> over genericDef, the
// TypeID of an open generic definition (spec §3.1, §4.1 invariant 1:
// "identical instantiation arguments always return the same TypeDesc
// instance").
func (c *Context) MakeInstantiatedType(genericDef TypeID, args []TypeID) (TypeID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	def := &c.types[genericDef]
	if def.Kind != KindDef {
		return NoTypeID, NewError(InvalidProgram, def.Name, "MakeInstantiatedType requires a Def type", nil)
	}
	if len(args) != def.GenericParamCount {
		return NoTypeID, NewError(InvalidProgram, def.Name,
			fmt.Sprintf("expected %d generic arguments, got %d", def.GenericParamCount, len(args)), nil)
	}
	key := typeKey{kind: KindInstantiated, genericDef: genericDef, args: joinIDs(args)}
	containsVars := false
	containsGC := false
	for _, a := range args {
		at := &c.types[a]
		containsVars = containsVars || at.ContainsGenericVariables
		containsGC = containsGC || at.ContainsGCPointers
	}
	id := c.internType(TypeDesc{
		Kind:                     KindInstantiated,
		GenericDef:               genericDef,
		Instantiation:            append([]TypeID(nil), args...),
		Name:                     def.Name,
		Namespace:                def.Namespace,
		Module:                   def.Module,
		BaseType:                 def.BaseType,
		Interfaces:               def.Interfaces,
		Fields:                   def.Fields,
		Methods:                  def.Methods,
		IsValueType:              def.IsValueType,
		IsAbstract:               def.IsAbstract,
		IsInterface:              def.IsInterface,
		ContainsGenericVariables: containsVars,
		ContainsGCPointers:       containsGC || def.ContainsGCPointers,
	}, key)
	return id, nil
}

// MakeInstantiatedMethod interns a generic method instantiation over
// genericDef, a method on an (optionally already instantiated) owning
// type.
func (c *Context) MakeInstantiatedMethod(genericDef MethodID, args []TypeID) (MethodID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	def := &c.methods[genericDef]
	if len(args) != def.GenericParamCount {
		return NoMethodID, NewError(InvalidProgram, def.Name,
			fmt.Sprintf("expected %d generic method arguments, got %d", def.GenericParamCount, len(args)), nil)
	}
	key := fmt.Sprintf("instmethod:%d:%s", genericDef, joinIDs(args))
	if id, ok := c.methodIndex[key]; ok {
		return id, nil
	}
	idx := MethodID(len(c.methods))
	m := *def
	m.ID = idx
	m.Kind = KindInstantiatedMethod
	m.HasInstantiation = true
	m.Instantiation = append([]TypeID(nil), args...)
	m.GenericDef = genericDef
	c.methods = append(c.methods, m)
	c.methodIndex[key] = idx
	return idx, nil
}

// InstantiateSignature substitutes generic parameters in sig's params
// and return type with typeArgs/methodArgs, in the manner of the
// substitution closure the GLOSSARY describes.
func (c *Context) InstantiateSignature(sig Signature, typeArgs, methodArgs []TypeID) Signature {
	out := Signature{
		Params: make([]TypeID, len(sig.Params)),
		Return: c.substituteType(sig.Return, typeArgs, methodArgs),
	}
	for i, p := range sig.Params {
		out.Params[i] = c.substituteType(p, typeArgs, methodArgs)
	}
	return out
}

// substituteType replaces generic parameter placeholders with concrete
// arguments, recursing through constructed types so a substitution is
// closed under nesting (e.g. List<T> -> List<string> inside T[]).
func (c *Context) substituteType(t TypeID, typeArgs, methodArgs []TypeID) TypeID {
	c.mu.RLock()
	td := c.types[t]
	c.mu.RUnlock()

	switch td.Kind {
	case KindGenericParameter:
		if td.IsMethodParam {
			if td.ParamIndex < len(methodArgs) {
				return methodArgs[td.ParamIndex]
			}
			return t
		}
		if td.ParamIndex < len(typeArgs) {
			return typeArgs[td.ParamIndex]
		}
		return t
	case KindArray:
		elem := c.substituteType(td.ElementType, typeArgs, methodArgs)
		if elem == td.ElementType {
			return t
		}
		return c.MakeArrayType(elem, td.ArrayRank)
	case KindByRef:
		elem := c.substituteType(td.ElementType, typeArgs, methodArgs)
		if elem == td.ElementType {
			return t
		}
		return c.MakeByRefType(elem)
	case KindPointer:
		elem := c.substituteType(td.ElementType, typeArgs, methodArgs)
		if elem == td.ElementType {
			return t
		}
		return c.MakePointerType(elem)
	case KindInstantiated:
		changed := false
		newArgs := make([]TypeID, len(td.Instantiation))
		for i, a := range td.Instantiation {
			newArgs[i] = c.substituteType(a, typeArgs, methodArgs)
			changed = changed || newArgs[i] != a
		}
		if !changed {
			return t
		}
		newID, err := c.MakeInstantiatedType(td.GenericDef, newArgs)
		if err != nil {
			return t
		}
		return newID
	default:
		return t
	}
}
