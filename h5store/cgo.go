// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package h5store

// #cgo LDFLAGS: -lhdf5
// #cgo darwin CFLAGS: -I/usr/local/include
// #cgo darwin LDFLAGS: -L/usr/local/lib
// #include <stdlib.h>
// #include "hdf5.h"
//
// static hid_t dx2_vstr_type(void) {
// 	hid_t t = H5Tcopy(H5T_C_S1);
// 	if (t < 0) return t;
// 	if (H5Tset_size(t, H5T_VARIABLE) < 0 || H5Tset_cset(t, H5T_CSET_UTF8) < 0) {
// 		H5Tclose(t);
// 		return -1;
// 	}
// 	return t;
// }
//
// static herr_t dx2_read_vstrs(hid_t attr, char **buf) {
// 	hid_t t = dx2_vstr_type();
// 	if (t < 0) return -1;
// 	herr_t err = H5Aread(attr, t, buf);
// 	H5Tclose(t);
// 	return err;
// }
//
// static herr_t dx2_write_vstrs(hid_t loc, const char *name, char **data, hsize_t n) {
// 	if (H5Aexists(loc, name) > 0 && H5Adelete(loc, name) < 0) return -1;
// 	hid_t t = dx2_vstr_type();
// 	if (t < 0) return -1;
// 	hid_t s = H5Screate_simple(1, &n, NULL);
// 	if (s < 0) {
// 		H5Tclose(t);
// 		return -1;
// 	}
// 	herr_t err = -1;
// 	hid_t a = H5Acreate2(loc, name, t, s, H5P_DEFAULT, H5P_DEFAULT);
// 	if (a >= 0) {
// 		err = H5Awrite(a, t, data);
// 		H5Aclose(a);
// 	}
// 	H5Sclose(s);
// 	H5Tclose(t);
// 	return err;
// }
import "C"

import (
	"bytes"
	"fmt"
	"reflect"
	"unsafe"

	"gonum.org/v1/hdf5"
)

// readStrings reads a 1D string attribute, which may hold either
// variable length or fixed size strings.
func readStrings(a *hdf5.Attribute) ([]string, error) {
	space := a.Space()
	n := space.SimpleExtentNPoints()
	space.Close()
	if n == 0 {
		return nil, nil
	}
	id := C.hid_t(a.ID())
	ft := C.H5Aget_type(id)
	if ft < 0 {
		return nil, fmt.Errorf("unable to get attribute type")
	}
	defer C.H5Tclose(ft)
	if C.H5Tget_class(ft) != C.H5T_STRING {
		return nil, fmt.Errorf("attribute is not a string")
	}
	if C.H5Tis_variable_str(ft) > 0 {
		buf := make([]*C.char, n)
		if C.dx2_read_vstrs(id, &buf[0]) < 0 {
			return nil, fmt.Errorf("unable to read variable length strings")
		}
		ss := make([]string, n)
		for i, p := range buf {
			if p != nil {
				ss[i] = C.GoString(p)
				C.H5free_memory(unsafe.Pointer(p))
			}
		}
		return ss, nil
	}
	size := int(C.H5Tget_size(ft))
	if size <= 0 {
		return nil, fmt.Errorf("invalid string size %d", size)
	}
	buf := make([]byte, n*size)
	if C.H5Aread(id, ft, unsafe.Pointer(&buf[0])) < 0 {
		return nil, fmt.Errorf("unable to read fixed size strings")
	}
	ss := make([]string, n)
	for i := range ss {
		ss[i] = string(bytes.TrimRight(buf[i*size:(i+1)*size], "\x00 "))
	}
	return ss, nil
}

// writeStrings writes a 1D attribute of variable length UTF-8 strings,
// replacing any existing attribute of that name.
func writeStrings(g *hdf5.Group, name string, ss []string) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	data := make([]*C.char, len(ss))
	for i, s := range ss {
		data[i] = C.CString(s)
	}
	defer func() {
		for _, p := range data {
			C.free(unsafe.Pointer(p))
		}
	}()
	if C.dx2_write_vstrs(C.hid_t(g.ID()), cname, &data[0], C.hsize_t(len(ss))) < 0 {
		return fmt.Errorf("h5store: unable to write attribute %q", name)
	}
	return nil
}

// readNative reads all of the dataset into the given non-empty []T,
// converting from the file type to the native type of T.
func readNative(d *hdf5.Dataset, mem *hdf5.Datatype, values any) error {
	ptr := reflect.ValueOf(firstElem(values)).UnsafePointer()
	if C.H5Dread(C.hid_t(d.ID()), C.hid_t(mem.ID()), C.H5S_ALL, C.H5S_ALL, C.H5P_DEFAULT, ptr) < 0 {
		return fmt.Errorf("H5Dread failed")
	}
	return nil
}

// writeNative writes all of the given non-empty []T to the dataset,
// converting from the native type of T to the file type.
func writeNative(d *hdf5.Dataset, mem *hdf5.Datatype, values any) error {
	ptr := reflect.ValueOf(firstElem(values)).UnsafePointer()
	if C.H5Dwrite(C.hid_t(d.ID()), C.hid_t(mem.ID()), C.H5S_ALL, C.H5S_ALL, C.H5P_DEFAULT, ptr) < 0 {
		return fmt.Errorf("H5Dwrite failed")
	}
	return nil
}

func deleteAttr(g *hdf5.Group, name string) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	if C.H5Adelete(C.hid_t(g.ID()), cname) < 0 {
		return fmt.Errorf("h5store: unable to delete attribute %q", name)
	}
	return nil
}
