/*
 * errors.go, part of goxpi
 *
 * Copyright 2025 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package xpi

import "fmt"

//Kind classifies an error for the batch layer, which needs to tell apart
//what failed without parsing messages.
type Kind int

const (
	//KindStructuralInput means the file could not be read or parsed.
	//Fatal to that file only.
	KindStructuralInput Kind = iota + 1
	//KindHydrogenization means hydrogen preparation failed (the external
	//program is missing or choked on the structure). Fatal to that file only.
	KindHydrogenization
	//KindDegenerateGeometry means ring atoms were missing or collinear.
	//It is absorbed inside the ring extractor and should never reach a
	//caller; it exists so the constant set covers the whole taxonomy.
	KindDegenerateGeometry
	//KindConfiguration means the run was misconfigured (bad filter values,
	//unset hydrogenation program when re-addition was requested). Fatal
	//before any file is processed.
	KindConfiguration
)

//String returns a short tag for the error kind.
func (k Kind) String() string {
	switch k {
	case KindStructuralInput:
		return "StructuralInput"
	case KindHydrogenization:
		return "Hydrogenization"
	case KindDegenerateGeometry:
		return "DegenerateGeometry"
	case KindConfiguration:
		return "Configuration"
	}
	return "Unknown"
}

//Error is the interface all errors in this library implement. The Decorate
//method adds information as the error goes up the call stack, without
//changing its type. Each element of the returned slice should be a function
//name, optionally followed by extra detail as "FunctionName: detail".
//Passing an empty string just returns the current decoration.
type Error interface {
	Error() string
	Decorate(string) []string
	Kind() Kind
}

//CError (Concrete Error) is the concrete type returned by the functions in
//this package. It also carries the name of the offending file, when there
//is one.
type CError struct {
	msg  string
	kind Kind
	file string
	deco []string
}

//NewError returns a CError of the given kind. file may be empty.
func NewError(kind Kind, file, msg string) *CError {
	return &CError{msg: msg, kind: kind, file: file}
}

//Errorf returns a CError of the given kind with a formatted message.
func Errorf(kind Kind, file, format string, a ...interface{}) *CError {
	return &CError{msg: fmt.Sprintf(format, a...), kind: kind, file: file}
}

func (err *CError) Error() string {
	if err.file != "" {
		return fmt.Sprintf("goxpi: %s: %s", err.file, err.msg)
	}
	return fmt.Sprintf("goxpi: %s", err.msg)
}

//Decorate adds deco to the decoration slice, unless it is empty, and
//returns the resulting slice.
func (err *CError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Kind returns the classification of the error.
func (err *CError) Kind() Kind { return err.kind }

//FileName returns the file associated to the error, or the empty string.
func (err *CError) FileName() string { return err.file }

//errDecorate asserts that err implements Error, decorates it with the
//caller's name and returns it. With an error from outside the library it
//wraps it into a CError of the given kind instead, so the batch layer
//always gets something it can classify.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	err2, ok := err.(Error)
	if !ok {
		return NewError(KindStructuralInput, "", caller+": "+err.Error())
	}
	err2.Decorate(caller)
	return err2
}

//PanicMsg is the type used for panics on programmer errors. For anything
//recoverable use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrResidueOutOfRange = PanicMsg("goxpi: Requested residue out of range")
	ErrNilStructure      = PanicMsg("goxpi: nil structure given")
	ErrNilRing           = PanicMsg("goxpi: nil ring instance given")
	ErrNilRecords        = PanicMsg("goxpi: nil record set given")
)
