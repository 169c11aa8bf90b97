package system

import "testing"

func TestIndexKeyOrderIndependent(t *testing.T) {
	a := NewIndexKey([]int{3, 1, 2})
	b := NewIndexKey([]int{1, 2, 3})
	if !a.Equal(b) {
		t.Fatalf("keys built from the same set in different orders should be equal")
	}
	if a != b {
		t.Fatalf("IndexKey should be directly comparable as a map key")
	}
}

func TestIndexKeyDistinguishesDifferentSets(t *testing.T) {
	a := NewIndexKey([]int{1, 2})
	b := NewIndexKey([]int{1, 3})
	if a.Equal(b) {
		t.Fatalf("distinct sets must not produce equal keys")
	}
}

func TestEnumKeyDistinguishesOrdinals(t *testing.T) {
	a := EnumKey(5, 0)
	b := EnumKey(5, 1)
	if a.Equal(b) {
		t.Fatalf("different ordinals of the same enum class must produce distinct keys")
	}
}

func TestIndexKeyUsableAsMapKey(t *testing.T) {
	m := map[IndexKey]string{}
	m[NewIndexKey([]int{2, 1})] = "composition-a"
	if got, ok := m[NewIndexKey([]int{1, 2})]; !ok || got != "composition-a" {
		t.Fatalf("lookup with a differently-ordered but equal key failed: got %q, ok=%v", got, ok)
	}
}
