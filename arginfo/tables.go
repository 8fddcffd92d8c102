package arginfo

// Hand-written programs and the metadata the runtime must report for them.
var staticCases = []Case{
	{
		Label: "single kernel",
		Source: `__kernel void sample_test(__global float *src, __global int *dst)
{
    int tid = get_global_id(0);
    dst[tid] = (int)src[tid];
}
`,
		Kernels: []KernelCase{
			{
				Name: "sample_test",
				Args: []Arg{
					{Address: AddressGlobal, Access: AccessNone, Qualifier: TypeNone, TypeName: "float*", Name: "src"},
					{Address: AddressGlobal, Access: AccessNone, Qualifier: TypeNone, TypeName: "int*", Name: "dst"},
				},
			},
		},
	},
	{
		Label: "two kernels",
		Source: `__kernel void sample_test(__global float *src, __global int *dst)
{
    int tid = get_global_id(0);
    dst[tid] = (int)src[tid];
}

__kernel void sample_test2(__global int *src, __global float *dst)
{
    int tid = get_global_id(0);
    dst[tid] = (float)src[tid];
}
`,
		Kernels: []KernelCase{
			{
				Name: "sample_test",
				Args: []Arg{
					{Address: AddressGlobal, Access: AccessNone, Qualifier: TypeNone, TypeName: "float*", Name: "src"},
					{Address: AddressGlobal, Access: AccessNone, Qualifier: TypeNone, TypeName: "int*", Name: "dst"},
				},
			},
			{
				Name: "sample_test2",
				Args: []Arg{
					{Address: AddressGlobal, Access: AccessNone, Qualifier: TypeNone, TypeName: "int*", Name: "src"},
					{Address: AddressGlobal, Access: AccessNone, Qualifier: TypeNone, TypeName: "float*", Name: "dst"},
				},
			},
		},
	},
	{
		Label: "qualifiers",
		Source: `kernel void qualifiers(global const int *a, global volatile float *b, global int * restrict c,
                         constant float4 *d, local uchar *e, int f, const float g)
{
}
`,
		Kernels: []KernelCase{
			{
				Name: "qualifiers",
				Args: []Arg{
					{Address: AddressGlobal, Access: AccessNone, Qualifier: TypeConst, TypeName: "int*", Name: "a"},
					{Address: AddressGlobal, Access: AccessNone, Qualifier: TypeVolatile, TypeName: "float*", Name: "b"},
					{Address: AddressGlobal, Access: AccessNone, Qualifier: TypeRestrict, TypeName: "int*", Name: "c"},
					{Address: AddressConstant, Access: AccessNone, Qualifier: TypeConst, TypeName: "float4*", Name: "d"},
					{Address: AddressLocal, Access: AccessNone, Qualifier: TypeNone, TypeName: "uchar*", Name: "e"},
					{Address: AddressPrivate, Access: AccessNone, Qualifier: TypeNone, TypeName: "int", Name: "f"},
					{Address: AddressPrivate, Access: AccessNone, Qualifier: TypeNone, TypeName: "float", Name: "g"},
				},
			},
		},
	},
	{
		Label: "sign spellings",
		Source: `kernel void spellings(global unsigned int *a, global unsigned char *b, unsigned short c,
                        global signed short *d, global const volatile uint2 *e)
{
}
`,
		Kernels: []KernelCase{
			{
				Name: "spellings",
				Args: []Arg{
					{Address: AddressGlobal, Access: AccessNone, Qualifier: TypeNone, TypeName: "uint*", Name: "a"},
					{Address: AddressGlobal, Access: AccessNone, Qualifier: TypeNone, TypeName: "uchar*", Name: "b"},
					{Address: AddressPrivate, Access: AccessNone, Qualifier: TypeNone, TypeName: "ushort", Name: "c"},
					{Address: AddressGlobal, Access: AccessNone, Qualifier: TypeNone, TypeName: "short*", Name: "d"},
					{Address: AddressGlobal, Access: AccessNone, Qualifier: TypeConst | TypeVolatile, TypeName: "uint2*", Name: "e"},
				},
			},
		},
	},
	{
		Label: "typedefs",
		Source: `typedef struct {
    int x;
    float y;
} pair_t;

typedef float4 vec_t;

kernel void typedefs(global pair_t *pairs, global vec_t *vecs, pair_t seed)
{
}
`,
		Kernels: []KernelCase{
			{
				Name: "typedefs",
				Args: []Arg{
					{Address: AddressGlobal, Access: AccessNone, Qualifier: TypeNone, TypeName: "pair_t*", Name: "pairs"},
					{Address: AddressGlobal, Access: AccessNone, Qualifier: TypeNone, TypeName: "vec_t*", Name: "vecs"},
					{Address: AddressPrivate, Access: AccessNone, Qualifier: TypeNone, TypeName: "pair_t", Name: "seed"},
				},
			},
		},
	},
	{
		Label: "images",
		Source: `kernel void images(read_only image2d_t src, write_only image2d_t dst, sampler_t smp)
{
}
`,
		Kernels: []KernelCase{
			{
				Name: "images",
				Args: []Arg{
					{Address: AddressGlobal, Access: AccessReadOnly, Qualifier: TypeNone, TypeName: "image2d_t", Name: "src"},
					{Address: AddressGlobal, Access: AccessWriteOnly, Qualifier: TypeNone, TypeName: "image2d_t", Name: "dst"},
					{Address: AddressPrivate, Access: AccessNone, Qualifier: TypeNone, TypeName: "sampler_t", Name: "smp"},
				},
			},
		},
		NeedsImages: true,
	},
}

// Get the hand-written cases that apply to env.
func StaticCases(env Env) []Case {
	var cases []Case
	for _, c := range staticCases {
		if c.NeedsImages && !env.Images {
			continue
		}
		cases = append(cases, c)
	}
	return cases
}
