package descriptor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapconv/internal/diagnostic"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"int", "I"},
		{"boolean", "Z"},
		{"long", "J"},
		{"float", "F"},
		{"double", "D"},
		{"short", "S"},
		{"byte", "B"},
		{"char", "C"},
		{"void", "V"},
		{"int[]", "[I"},
		{"int[][]", "[[I"},
		{"java.util.List", "Ljava/util/List;"},
		{"java.lang.String[]", "[Ljava/lang/String;"},
		{"net.minecraft.core.Holder$Reference", "Lnet/minecraft/core/Holder$Reference;"},
		{"abc", "Labc;"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Encode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEncodeMalformed(t *testing.T) {
	inputs := []string{
		"",
		"int[",
		"int]",
		"int[]]",
		"java.util.List<String>",
		"java..lang.String",
		".Foo",
		"foo bar",
		"void[]",
		"in[]t",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Encode(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, diagnostic.ErrMalformedTypeName)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"int", "void", "boolean[]", "char[][][]",
		"java.lang.Object", "java.lang.Object[][]",
		"a", "a$b", "com.mojang.datafixers.util.Pair",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			enc, err := Encode(input)
			require.NoError(t, err)

			dec, err := Decode(enc)
			require.NoError(t, err)
			assert.Equal(t, input, dec)
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	inputs := []string{"", "[", "Q", "Ljava/lang/String", "II", "[V", "L;", "Lfoo<bar>;"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Decode(input)
			assert.ErrorIs(t, err, diagnostic.ErrMalformedTypeName)
		})
	}
}

func TestEncodeMethod(t *testing.T) {
	got, err := EncodeMethod("void", nil)
	require.NoError(t, err)
	assert.Equal(t, "()V", got)

	got, err = EncodeMethod("java.lang.String[]", []string{"int", "java.util.Map", "long[][]"})
	require.NoError(t, err)
	assert.Equal(t, "(ILjava/util/Map;[[J)[Ljava/lang/String;", got)

	_, err = EncodeMethod("void", []string{"void"})
	assert.ErrorIs(t, err, diagnostic.ErrMalformedTypeName)

	_, err = EncodeMethod("int[", nil)
	assert.ErrorIs(t, err, diagnostic.ErrMalformedTypeName)
}

func TestDecodeMethod(t *testing.T) {
	ret, params, err := DecodeMethod("(ILjava/util/Map;[[J)[Ljava/lang/String;")
	require.NoError(t, err)
	assert.Equal(t, "java.lang.String[]", ret)
	assert.Equal(t, []string{"int", "java.util.Map", "long[][]"}, params)

	ret, params, err = DecodeMethod("()V")
	require.NoError(t, err)
	assert.Equal(t, "void", ret)
	assert.Empty(t, params)

	for _, bad := range []string{"V", "(I", "(V)V", "(I)", "(I)VV"} {
		_, _, err := DecodeMethod(bad)
		assert.ErrorIs(t, err, diagnostic.ErrMalformedTypeName, bad)
	}
}

func TestEncodeFuncRenamesClassesOnly(t *testing.T) {
	renames := map[string]string{
		"net.minecraft.world.entity.Entity": "bsr",
		"net.minecraft.world.level.Level":   "dwm",
	}
	rename := func(name string) string {
		if obf, ok := renames[name]; ok {
			return obf
		}

		return name
	}

	got, err := EncodeMethodFunc(
		"net.minecraft.world.entity.Entity[]",
		[]string{"net.minecraft.world.level.Level", "int", "java.lang.String"},
		rename,
	)
	require.NoError(t, err)
	assert.Equal(t, "(Ldwm;ILjava/lang/String;)[Lbsr;", got)

	_, err = EncodeFunc("a.B", func(string) string { return "bad name" })
	assert.ErrorIs(t, err, diagnostic.ErrMalformedTypeName)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "java/lang/String", InternalName("java.lang.String"))
	assert.Equal(t, "java.lang.String", SourceName("java/lang/String"))
	assert.True(t, IsPrimitive("void"))
	assert.False(t, IsPrimitive("Void"))
	assert.Equal(t, "int", ElementType("int[][]"))
	assert.NoError(t, Validate("a.b.C$D"))
	assert.True(t, strings.Contains(Validate("a b").Error(), "malformed type name"))
}
