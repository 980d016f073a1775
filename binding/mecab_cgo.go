//go:build mecab

package binding

// Binding to libmecab through dlopen/dlsym, so the library path resolved at
// runtime (MECAB_PATH or mecab-config) is honored instead of a link-time
// dependency. Function contracts are those of mecab.h.

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>
#include <string.h>

typedef struct mecab_dictionary_info_t {
	const char                       *filename;
	const char                       *charset;
	unsigned int                      size;
	int                               type;
	unsigned int                      lsize;
	unsigned int                      rsize;
	unsigned short                    version;
	struct mecab_dictionary_info_t   *next;
} mecab_dictionary_info_t;

typedef struct mecab_node_t {
	struct mecab_node_t *prev;
	struct mecab_node_t *next;
	struct mecab_node_t *enext;
	struct mecab_node_t *bnext;
	void                *rpath;
	void                *lpath;
	const char          *surface;
	const char          *feature;
	unsigned int         id;
	unsigned short       length;
	unsigned short       rlength;
	unsigned short       rcAttr;
	unsigned short       lcAttr;
	unsigned short       posid;
	unsigned char        char_type;
	unsigned char        stat;
	unsigned char        isbest;
	float                alpha;
	float                beta;
	float                prob;
	short                wcost;
	long                 cost;
} mecab_node_t;

typedef void* (*fn_p_cs)(const char*);
typedef void* (*fn_p_p)(void*);
typedef const char* (*fn_cs_v)(void);
typedef const char* (*fn_cs_p)(void*);
typedef void (*fn_v_p)(void*);
typedef void (*fn_v_p_cs)(void*, const char*);
typedef void (*fn_v_p_i)(void*, int);
typedef void (*fn_v_p_d)(void*, double);
typedef void (*fn_v_p_z_i)(void*, size_t, int);
typedef void (*fn_v_p_z_z_cs)(void*, size_t, size_t, const char*);
typedef int (*fn_i_p)(void*);
typedef int (*fn_i_p_z)(void*, size_t);
typedef int (*fn_i_p_p)(void*, void*);
typedef const char* (*fn_cs_p_z)(void*, size_t);

static void* call_p_cs(void* f, const char* s)            { return ((fn_p_cs)f)(s); }
static void* call_p_p(void* f, void* p)                   { return ((fn_p_p)f)(p); }
static const char* call_cs_v(void* f)                     { return ((fn_cs_v)f)(); }
static const char* call_cs_p(void* f, void* p)            { return ((fn_cs_p)f)(p); }
static void call_v_p(void* f, void* p)                    { ((fn_v_p)f)(p); }
static void call_v_p_cs(void* f, void* p, const char* s)  { ((fn_v_p_cs)f)(p, s); }
static void call_v_p_i(void* f, void* p, int i)           { ((fn_v_p_i)f)(p, i); }
static void call_v_p_d(void* f, void* p, double d)        { ((fn_v_p_d)f)(p, d); }
static void call_v_p_z_i(void* f, void* p, size_t z, int i)           { ((fn_v_p_z_i)f)(p, z, i); }
static void call_v_p_z_z_cs(void* f, void* p, size_t b, size_t e, const char* s) { ((fn_v_p_z_z_cs)f)(p, b, e, s); }
static int call_i_p(void* f, void* p)                     { return ((fn_i_p)f)(p); }
static int call_i_p_z(void* f, void* p, size_t z)         { return ((fn_i_p_z)f)(p, z); }
static int call_i_p_p(void* f, void* a, void* b)          { return ((fn_i_p_p)f)(a, b); }
static const char* call_cs_p_z(void* f, void* p, size_t z){ return ((fn_cs_p_z)f)(p, z); }
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// Open loads libmecab from path and resolves the symbols natto-go uses.
func Open(path string) (Library, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	h := C.dlopen(cpath, C.RTLD_NOW|C.RTLD_GLOBAL)
	if h == nil {
		return nil, fmt.Errorf("binding: dlopen %s: %s", path, C.GoString(C.dlerror()))
	}
	lib := &mecabLibrary{handle: h, syms: make(map[string]unsafe.Pointer)}
	for _, name := range []string{
		"mecab_version",
		"mecab_model_new2", "mecab_model_destroy",
		"mecab_model_new_tagger", "mecab_model_new_lattice",
		"mecab_model_dictionary_info",
		"mecab_destroy", "mecab_strerror",
		"mecab_lattice_destroy", "mecab_lattice_clear",
		"mecab_lattice_strerror", "mecab_lattice_get_sentence",
		"mecab_lattice_set_sentence", "mecab_lattice_set_theta",
		"mecab_lattice_get_request_type", "mecab_lattice_set_request_type",
		"mecab_lattice_add_request_type",
		"mecab_lattice_get_boundary_constraint",
		"mecab_lattice_set_boundary_constraint",
		"mecab_lattice_set_feature_constraint",
		"mecab_parse_lattice", "mecab_lattice_next",
		"mecab_lattice_tostr", "mecab_lattice_nbest_tostr",
		"mecab_lattice_get_bos_node",
	} {
		cname := C.CString(name)
		sym := C.dlsym(h, cname)
		C.free(unsafe.Pointer(cname))
		if sym == nil {
			C.dlclose(h)
			return nil, fmt.Errorf("binding: dlsym %s in %s: %s", name, path, C.GoString(C.dlerror()))
		}
		lib.syms[name] = sym
	}
	return lib, nil
}

type mecabLibrary struct {
	handle unsafe.Pointer
	syms   map[string]unsafe.Pointer
}

func (l *mecabLibrary) Version() string {
	return C.GoString(C.call_cs_v(l.syms["mecab_version"]))
}

func (l *mecabLibrary) NewModel(args []byte) Model {
	cargs := C.CString(string(args))
	defer C.free(unsafe.Pointer(cargs))
	p := C.call_p_cs(l.syms["mecab_model_new2"], cargs)
	if p == nil {
		return nil
	}
	return &mecabModel{lib: l, ptr: p}
}

type mecabModel struct {
	lib *mecabLibrary
	ptr unsafe.Pointer
}

func (m *mecabModel) NewTagger() Tagger {
	p := C.call_p_p(m.lib.syms["mecab_model_new_tagger"], m.ptr)
	if p == nil {
		return nil
	}
	return &mecabTagger{lib: m.lib, ptr: p}
}

func (m *mecabModel) NewLattice() Lattice {
	p := C.call_p_p(m.lib.syms["mecab_model_new_lattice"], m.ptr)
	if p == nil {
		return nil
	}
	return &mecabLattice{lib: m.lib, ptr: p}
}

func (m *mecabModel) DictionaryInfo() Dictionary {
	p := C.call_p_p(m.lib.syms["mecab_model_dictionary_info"], m.ptr)
	if p == nil {
		return nil
	}
	return snapshotDict((*C.mecab_dictionary_info_t)(p))
}

func (m *mecabModel) Destroy() {
	C.call_v_p(m.lib.syms["mecab_model_destroy"], m.ptr)
	m.ptr = nil
}

// snapshotDict copies the native dictionary-info list eagerly; it outlives
// any single native call and the fields never change after load.
func snapshotDict(d *C.mecab_dictionary_info_t) Dictionary {
	if d == nil {
		return nil
	}
	return &mecabDictInfo{
		filename: C.GoString(d.filename),
		charset:  C.GoString(d.charset),
		size:     int(d.size),
		typ:      int(d._type),
		lsize:    int(d.lsize),
		rsize:    int(d.rsize),
		version:  int(d.version),
		next:     snapshotDict(d.next),
	}
}

type mecabDictInfo struct {
	filename, charset                string
	size, typ, lsize, rsize, version int
	next                             Dictionary
}

func (d *mecabDictInfo) Next() Dictionary { return d.next }
func (d *mecabDictInfo) Filename() string { return d.filename }
func (d *mecabDictInfo) Charset() string  { return d.charset }
func (d *mecabDictInfo) Size() int        { return d.size }
func (d *mecabDictInfo) Type() int        { return d.typ }
func (d *mecabDictInfo) LSize() int       { return d.lsize }
func (d *mecabDictInfo) RSize() int       { return d.rsize }
func (d *mecabDictInfo) Version() int     { return d.version }

type mecabTagger struct {
	lib *mecabLibrary
	ptr unsafe.Pointer
}

func (t *mecabTagger) ParseLattice(lat Lattice) bool {
	ml := lat.(*mecabLattice)
	return C.call_i_p_p(t.lib.syms["mecab_parse_lattice"], t.ptr, ml.ptr) != 0
}

func (t *mecabTagger) Strerror() string {
	return C.GoString(C.call_cs_p(t.lib.syms["mecab_strerror"], t.ptr))
}

func (t *mecabTagger) Destroy() {
	C.call_v_p(t.lib.syms["mecab_destroy"], t.ptr)
	t.ptr = nil
}

type mecabLattice struct {
	lib *mecabLibrary
	ptr unsafe.Pointer
	// csentence keeps the C copy of the sentence alive for the lattice's
	// lifetime; mecab_lattice_set_sentence does not copy.
	csentence *C.char
}

func (l *mecabLattice) SetSentence(sentence []byte) {
	if l.csentence != nil {
		C.free(unsafe.Pointer(l.csentence))
	}
	l.csentence = C.CString(string(sentence))
	C.call_v_p_cs(l.lib.syms["mecab_lattice_set_sentence"], l.ptr, l.csentence)
}

func (l *mecabLattice) Sentence() []byte {
	s := C.call_cs_p(l.lib.syms["mecab_lattice_get_sentence"], l.ptr)
	if s == nil {
		return nil
	}
	return []byte(C.GoString(s))
}

func (l *mecabLattice) SetRequestType(rt RequestType) {
	C.call_v_p_i(l.lib.syms["mecab_lattice_set_request_type"], l.ptr, C.int(rt))
}

func (l *mecabLattice) AddRequestType(rt RequestType) {
	C.call_v_p_i(l.lib.syms["mecab_lattice_add_request_type"], l.ptr, C.int(rt))
}

func (l *mecabLattice) RequestType() RequestType {
	return RequestType(C.call_i_p(l.lib.syms["mecab_lattice_get_request_type"], l.ptr))
}

func (l *mecabLattice) SetBoundaryConstraint(pos int, bt BoundaryType) {
	C.call_v_p_z_i(l.lib.syms["mecab_lattice_set_boundary_constraint"], l.ptr, C.size_t(pos), C.int(bt))
}

func (l *mecabLattice) BoundaryConstraint(pos int) BoundaryType {
	return BoundaryType(C.call_i_p_z(l.lib.syms["mecab_lattice_get_boundary_constraint"], l.ptr, C.size_t(pos)))
}

func (l *mecabLattice) SetFeatureConstraint(begin, end int, feature []byte) {
	cfeat := C.CString(string(feature))
	defer C.free(unsafe.Pointer(cfeat))
	C.call_v_p_z_z_cs(l.lib.syms["mecab_lattice_set_feature_constraint"], l.ptr,
		C.size_t(begin), C.size_t(end), cfeat)
}

func (l *mecabLattice) SetTheta(theta float64) {
	C.call_v_p_d(l.lib.syms["mecab_lattice_set_theta"], l.ptr, C.double(theta))
}

func (l *mecabLattice) Next() bool {
	return C.call_i_p(l.lib.syms["mecab_lattice_next"], l.ptr) != 0
}

func (l *mecabLattice) ToString() []byte {
	s := C.call_cs_p(l.lib.syms["mecab_lattice_tostr"], l.ptr)
	if s == nil {
		return nil
	}
	return []byte(C.GoString(s))
}

func (l *mecabLattice) NBestToString(n int) []byte {
	s := C.call_cs_p_z(l.lib.syms["mecab_lattice_nbest_tostr"], l.ptr, C.size_t(n))
	if s == nil {
		return nil
	}
	return []byte(C.GoString(s))
}

func (l *mecabLattice) BOSNode() Node {
	p := C.call_p_p(l.lib.syms["mecab_lattice_get_bos_node"], l.ptr)
	if p == nil {
		return nil
	}
	return &mecabNode{ptr: (*C.mecab_node_t)(p)}
}

func (l *mecabLattice) Strerror() string {
	return C.GoString(C.call_cs_p(l.lib.syms["mecab_lattice_strerror"], l.ptr))
}

func (l *mecabLattice) Clear() {
	C.call_v_p(l.lib.syms["mecab_lattice_clear"], l.ptr)
}

func (l *mecabLattice) Destroy() {
	C.call_v_p(l.lib.syms["mecab_lattice_destroy"], l.ptr)
	if l.csentence != nil {
		C.free(unsafe.Pointer(l.csentence))
		l.csentence = nil
	}
	l.ptr = nil
}

type mecabNode struct {
	ptr *C.mecab_node_t
}

func wrapNode(p *C.mecab_node_t) Node {
	if p == nil {
		return nil
	}
	return &mecabNode{ptr: p}
}

func (n *mecabNode) Next() Node { return wrapNode(n.ptr.next) }
func (n *mecabNode) Prev() Node { return wrapNode(n.ptr.prev) }

func (n *mecabNode) Surface() []byte {
	return C.GoBytes(unsafe.Pointer(n.ptr.surface), C.int(n.ptr.length))
}

func (n *mecabNode) Feature() []byte {
	return []byte(C.GoString(n.ptr.feature))
}

func (n *mecabNode) ID() int        { return int(n.ptr.id) }
func (n *mecabNode) Length() int    { return int(n.ptr.length) }
func (n *mecabNode) RLength() int   { return int(n.ptr.rlength) }
func (n *mecabNode) RCAttr() int    { return int(n.ptr.rcAttr) }
func (n *mecabNode) LCAttr() int    { return int(n.ptr.lcAttr) }
func (n *mecabNode) PosID() int     { return int(n.ptr.posid) }
func (n *mecabNode) CharType() int  { return int(n.ptr.char_type) }
func (n *mecabNode) Stat() NodeStat { return NodeStat(n.ptr.stat) }
func (n *mecabNode) IsBest() bool   { return n.ptr.isbest != 0 }
func (n *mecabNode) Alpha() float32 { return float32(n.ptr.alpha) }
func (n *mecabNode) Beta() float32  { return float32(n.ptr.beta) }
func (n *mecabNode) Prob() float32  { return float32(n.ptr.prob) }
func (n *mecabNode) WCost() int     { return int(n.ptr.wcost) }
func (n *mecabNode) Cost() int64    { return int64(n.ptr.cost) }
