package glm

type Vec4[T numeric] [4]T
